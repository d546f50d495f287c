package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound          = errors.New("recurso não encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("estoque insuficiente")
	ErrSyncBusy          = errors.New("sincronização já em andamento")
)

// RemoteReason classifica a causa de uma falha do gateway remoto.
// A classificação acontece dentro do gateway (códigos pgconn), nunca por
// inspeção de texto de erro nas camadas superiores.
type RemoteReason string

const (
	// RemoteUnavailable indica que não há handle de conexão estabelecido.
	// É a única causa que dispara enfileiramento para sync posterior.
	RemoteUnavailable RemoteReason = "unavailable"
	// RemoteSchemaMismatch indica incompatibilidade de tipo de coluna
	// (ex.: coluna array recebendo escalar) que persiste após o re-encoding.
	RemoteSchemaMismatch RemoteReason = "schema_mismatch"
	// RemoteRejected indica que o backend recusou a operação estando
	// disponível: problema de dados, não de conectividade.
	RemoteRejected RemoteReason = "rejected"
)

// RemoteError falha de rede/API do gateway remoto.
type RemoteError struct {
	Reason RemoteReason
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("remoto: %s", e.Reason)
	}
	return fmt.Sprintf("remoto: %s: %v", e.Reason, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// NewRemoteError constrói um RemoteError com a causa informada.
func NewRemoteError(reason RemoteReason, err error) *RemoteError {
	return &RemoteError{Reason: reason, Err: err}
}

// ErrRemoteUnavailable erro pronto para chamadas feitas sem handle ativo.
var ErrRemoteUnavailable = &RemoteError{Reason: RemoteUnavailable}

// IsRemoteUnavailable verifica se o erro é indisponibilidade do gateway.
// Repositórios usam isso para decidir entre enfileirar e propagar.
func IsRemoteUnavailable(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Reason == RemoteUnavailable
}
