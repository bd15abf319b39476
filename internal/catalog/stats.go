package catalog

// ClientStats summarizes the client base
type ClientStats struct {
	TotalClients   int            `json:"total_clients"`
	FitPreferences map[string]int `json:"fit_preferences"`
}

// ProductStats summarizes the catalog
type ProductStats struct {
	TotalProducts int            `json:"total_products"`
	FitTypes      map[string]int `json:"fit_types"`
	Fabrics       map[string]int `json:"fabrics"`
}

// ClientStats counts clients by preferred fit.
func (s *Store) ClientStats() ClientStats {
	stats := ClientStats{
		TotalClients:   len(s.clients),
		FitPreferences: make(map[string]int),
	}
	for _, c := range s.clients {
		stats.FitPreferences[string(c.PreferredFit)]++
	}
	return stats
}

// ProductStats counts products by fit and by fabric.
func (s *Store) ProductStats() ProductStats {
	stats := ProductStats{
		TotalProducts: len(s.products),
		FitTypes:      make(map[string]int),
		Fabrics:       make(map[string]int),
	}
	for _, p := range s.products {
		stats.FitTypes[string(p.Fit)]++
		stats.Fabrics[p.Fabric]++
	}
	return stats
}
