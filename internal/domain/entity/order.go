package entity

import "time"

// Status de um pedido.
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
)

// OrderItem linha de um pedido. Vive embutido no pedido, não é entidade
// independente.
type OrderItem struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	QtyRequested int    `json:"qtyRequested"`
	QtyPicked    int    `json:"qtyPicked"`
}

// FullyPicked indica se a linha já foi totalmente separada.
func (i OrderItem) FullyPicked() bool {
	return i.QtyPicked >= i.QtyRequested
}

// Order representa um pedido de separação.
type Order struct {
	ID            string      `json:"id"` // UUID
	OrderNumber   string      `json:"orderNumber"`
	CustomerName  string      `json:"customerName"`
	Filial        string      `json:"filial"`
	Matricula     string      `json:"matricula"`
	Date          time.Time   `json:"date"`
	Status        string      `json:"status"`
	Items         []OrderItem `json:"items"`
	Obs           string      `json:"obs,omitempty"`
	EnvioMalote   bool        `json:"envioMalote"`
	EntregaMatriz bool        `json:"entregaMatriz"`
}

// Valid verifica os campos obrigatórios para persistência.
func (o *Order) Valid() bool {
	return o.OrderNumber != "" && o.CustomerName != "" && len(o.Items) > 0
}

// AllPicked indica se todas as linhas foram totalmente separadas.
func (o *Order) AllPicked() bool {
	for _, it := range o.Items {
		if !it.FullyPicked() {
			return false
		}
	}
	return true
}

// HasShipping indica se alguma forma de envio foi marcada.
func (o *Order) HasShipping() bool {
	return o.EnvioMalote || o.EntregaMatriz
}

// RecomputeStatus aplica o invariante de status: completed se e somente se
// todas as linhas estão separadas E alguma forma de envio está marcada.
// Nunca confiamos no status vindo do cliente nem no persistido; isso é
// recalculado em toda escrita e normalizado em toda leitura.
func (o *Order) RecomputeStatus() {
	if o.AllPicked() && o.HasShipping() {
		o.Status = OrderCompleted
		return
	}
	o.Status = OrderPending
}

// Normalize corrige dados persistidos inconsistentes: um pedido gravado como
// completed com as duas flags de envio desmarcadas (dado antigo ou escrito
// por outro cliente) volta a pending na carga.
func (o *Order) Normalize() {
	if o.Status == OrderCompleted && !o.HasShipping() {
		o.Status = OrderPending
	}
	if o.Status != OrderCompleted {
		o.Status = OrderPending
	}
}

// Item devolve um ponteiro para a linha do produto informado, ou nil.
func (o *Order) Item(productID string) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}
