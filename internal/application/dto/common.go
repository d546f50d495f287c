package dto

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SyncStatusResponse estado do motor de sincronização.
type SyncStatusResponse struct {
	Online  bool `json:"online"`
	Pending int  `json:"pending"`
}

// DrainResponse resultado de um passe de drain ou reconexão.
type DrainResponse struct {
	Synced  int `json:"synced"`
	Pending int `json:"pending"`
}
