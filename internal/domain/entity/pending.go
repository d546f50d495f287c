package entity

import (
	"encoding/json"
	"time"
)

// MutationKind identifica o tipo de entidade de uma mutação pendente.
type MutationKind string

const (
	MutationProduct     MutationKind = "PRODUCT"
	MutationMovement    MutationKind = "MOVEMENT"
	MutationOrder       MutationKind = "ORDER"
	MutationDeleteOrder MutationKind = "DELETE_ORDER"
)

// PendingMutation é uma intenção registrada de aplicar uma mutação no
// remoto, persistida na fila até confirmação. O payload é o snapshot da
// entidade no nível do repositório (não uma requisição de rede crua), para
// que o replay reutilize o caminho de aplicação sem revalidar.
type PendingMutation struct {
	ID         string          `json:"id"`
	Kind       MutationKind    `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	IsNew      bool            `json:"isNew,omitempty"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
}

// Command comando tipado consumido pelo dispatch do gateway remoto, no
// lugar de flags booleanas espalhadas por chamada.
type Command int

const (
	CommandInsert Command = iota
	CommandUpsert
	CommandUpdate
	CommandDelete
)

// String para logs.
func (c Command) String() string {
	switch c {
	case CommandInsert:
		return "insert"
	case CommandUpsert:
		return "upsert"
	case CommandUpdate:
		return "update"
	case CommandDelete:
		return "delete"
	}
	return "unknown"
}
