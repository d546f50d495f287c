package entity

// Product representa um item de estoque. O ID é o próprio código de barras
// (ou código manual) informado pelo operador, único na coleção.
type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// Valid verifica os campos obrigatórios para persistência.
func (p *Product) Valid() bool {
	return p.ID != "" && p.Name != ""
}
