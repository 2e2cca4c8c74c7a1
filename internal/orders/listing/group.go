// Package listing serves the admin order list: range reads, filtered
// load-more pages and calendar-day grouping.
package listing

import (
	"sort"
	"time"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
)

const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"

	dayLabelLayout = "Mon, 02 Jan"
	dayKeyLayout   = "2006-01-02"
)

// Counts tallies orders by fulfilment status.
type Counts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Shipped   int `json:"shipped"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
	Returned  int `json:"returned"`
}

func (c *Counts) add(status enums.OrderStatus) {
	c.Total++
	switch status {
	case enums.OrderStatusPending:
		c.Pending++
	case enums.OrderStatusConfirmed:
		c.Confirmed++
	case enums.OrderStatusShipped:
		c.Shipped++
	case enums.OrderStatusDelivered:
		c.Delivered++
	case enums.OrderStatusCancelled:
		c.Cancelled++
	case enums.OrderStatusReturned:
		c.Returned++
	}
}

// CountOrders tallies the given orders.
func CountOrders(views []orders.OrderView) Counts {
	var c Counts
	for _, v := range views {
		c.add(v.OrderStatus)
	}
	return c
}

// Group is one calendar day of orders.
type Group struct {
	Label  string             `json:"label"`
	Date   string             `json:"date"`
	Counts Counts             `json:"counts"`
	Orders []orders.OrderView `json:"orders"`
}

// DayLabel names the calendar day of t in loc relative to now: "Today",
// "Yesterday", or the short "Mon, 02 Jan" form.
func DayLabel(t, now time.Time, loc *time.Location) string {
	day := startOfDay(t, loc)
	today := startOfDay(now, loc)
	switch {
	case day.Equal(today):
		return LabelToday
	case day.Equal(today.AddDate(0, 0, -1)):
		return LabelYesterday
	default:
		return t.In(loc).Format(dayLabelLayout)
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// GroupByDay buckets orders by creation day in loc. Groups come newest day
// first and orders newest first inside each group.
func GroupByDay(views []orders.OrderView, now time.Time, loc *time.Location) []Group {
	if loc == nil {
		loc = time.UTC
	}
	sorted := make([]orders.OrderView, len(views))
	copy(sorted, views)
	sortNewestFirst(sorted)

	groups := []Group{}
	index := map[string]int{}
	for _, v := range sorted {
		key := v.CreatedAt.In(loc).Format(dayKeyLayout)
		idx, ok := index[key]
		if !ok {
			idx = len(groups)
			index[key] = idx
			groups = append(groups, Group{
				Label: DayLabel(v.CreatedAt, now, loc),
				Date:  key,
			})
		}
		groups[idx].Orders = append(groups[idx].Orders, v)
		groups[idx].Counts.add(v.OrderStatus)
	}
	return groups
}

func sortNewestFirst(views []orders.OrderView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
}
