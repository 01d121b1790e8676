package dto

// StockHistoryPoint un día de la serie histórica, en fecha calendario UTC.
type StockHistoryPoint struct {
	Date      string `json:"date"` // YYYY-MM-DD
	NetChange int    `json:"netChange"`
	Inbound   int    `json:"inbound"`
	Outbound  int    `json:"outbound"`
}

// StockHistoryResponse serie diaria ascendente a nivel sistema (compañía).
type StockHistoryResponse struct {
	From   string              `json:"from"`
	To     string              `json:"to"`
	Points []StockHistoryPoint `json:"points"`
}

// BatchHistoryResponse serie diaria ascendente de un lote concreto. A diferencia
// de la serie de sistema, aquí las patas de transferencia sí cuentan: mueven
// cantidad hacia dentro o fuera del lote.
type BatchHistoryResponse struct {
	BatchID string              `json:"batchId"`
	Points  []StockHistoryPoint `json:"points"`
}
