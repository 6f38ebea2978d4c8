package dto

type Stats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	Last30Days int64            `json:"last_30_days"`
}
