// README: Expense statistics per plan.
package expense

type Stats struct {
	Total      float64              `json:"total"`
	Count      int                  `json:"count"`
	Average    float64              `json:"average"`
	ByCategory map[Category]float64 `json:"byCategory"`
}

func Summarize(records []Record) Stats {
	s := Stats{ByCategory: map[Category]float64{}}
	for _, r := range records {
		s.Total += r.Amount
		s.ByCategory[r.Category] += r.Amount
	}
	s.Count = len(records)
	if s.Count > 0 {
		s.Average = s.Total / float64(s.Count)
	}
	return s
}
