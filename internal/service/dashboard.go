package service

import "context"

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Summary holds the record count of every entity set.
type Summary struct {
	Products  int64 `json:"products"`
	Purchases int64 `json:"purchases"`
	Sales     int64 `json:"sales"`
	Users     int64 `json:"users"`
	Suppliers int64 `json:"suppliers"`
	Roles     int64 `json:"roles"`
}

type DashboardService struct {
	Products  Counter
	Purchases Counter
	Sales     Counter
	Users     Counter
	Suppliers Counter
	Roles     Counter
}

func NewDashboard(s *Services) *DashboardService {
	return &DashboardService{
		Products:  s.Products,
		Purchases: s.Purchases,
		Sales:     s.Sales,
		Users:     s.Users,
		Suppliers: s.Suppliers,
		Roles:     s.Roles,
	}
}

func (d *DashboardService) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	counts := []struct {
		c   Counter
		dst *int64
	}{
		{d.Products, &sum.Products},
		{d.Purchases, &sum.Purchases},
		{d.Sales, &sum.Sales},
		{d.Users, &sum.Users},
		{d.Suppliers, &sum.Suppliers},
		{d.Roles, &sum.Roles},
	}
	for _, x := range counts {
		n, err := x.c.Count(ctx)
		if err != nil {
			return Summary{}, err
		}
		*x.dst = n
	}
	return sum, nil
}
