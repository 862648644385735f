package models

// ClienteRanking is a derived leaderboard entry, never persisted.
// Rank fields are 1-based positions after a stable descending sort by
// litros_totales; ties keep first-appearance order from the pickup list.
type ClienteRanking struct {
	ClienteID       int     `json:"cliente_id"`
	Nombre          string  `json:"nombre,omitempty"`
	Distrito        string  `json:"distrito,omitempty"`
	Tipo            string  `json:"tipo,omitempty"`
	LitrosTotales   float64 `json:"litros_totales"`
	RecogidasCount  int     `json:"recogidas_count"`
	Ranking         int     `json:"ranking"`
	RankingDistrito int     `json:"ranking_distrito,omitempty"`
	RankingTipo     int     `json:"ranking_tipo,omitempty"`
}
