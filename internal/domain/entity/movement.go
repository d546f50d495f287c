package entity

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Movement registra uma movimentação de estoque. Append-only: nunca é
// alterada depois de criada, apenas apagada em massa pela limpeza de
// histórico. Qty negativa = saída, positiva = entrada, zero = evento
// informativo (ex.: envio de pedido).
type Movement struct {
	ID        int64     `json:"id"` // timestamp de criação em milissegundos
	Date      time.Time `json:"date"`
	ProdID    string    `json:"prodId,omitempty"` // vazio para eventos de sistema
	ProdName  string    `json:"prodName"`
	Qty       int       `json:"qty"`
	Obs       string    `json:"obs,omitempty"`
	Matricula string    `json:"matricula,omitempty"`
}

// matRe reconhece o prefixo estruturado gravado por EncodeObs.
var matRe = regexp.MustCompile(`^\[Mat: (.+?)\]\s*(.*)$`)

// EncodeObs codifica a matrícula do operador dentro do campo de observação,
// no formato `[Mat: <id>] <obs>`. O backend remoto não tem coluna dedicada
// para a matrícula; este é o contrato de fio acordado com ele.
func EncodeObs(matricula, obs string) string {
	if matricula == "" {
		return obs
	}
	return strings.TrimSpace(fmt.Sprintf("[Mat: %s] %s", matricula, obs))
}

// DecodeObs desfaz EncodeObs. Para observações sem o prefixo devolve a
// string original e matrícula vazia, simétrico em qualquer leitura.
func DecodeObs(encoded string) (matricula, obs string) {
	if m := matRe.FindStringSubmatch(encoded); m != nil {
		return m[1], m[2]
	}
	return "", encoded
}
