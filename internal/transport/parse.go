package transport

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/inventory_admin/internal/service"
)

// DateLayout is the wire format of date fields.
const DateLayout = "2006-01-02"

// parser collects field errors while turning form strings into values.
type parser struct {
	errs service.ValidationError
}

func (p *parser) id(field, s string) uint {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// keys are signed 64-bit in every store
	n, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		p.errs.Add(field, "must be a valid id")
		return 0
	}
	return uint(n)
}

func (p *parser) optionalID(field, s string) *uint {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n := p.id(field, s)
	return &n
}

func (p *parser) version(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		p.errs.Add("version", "must be a non-negative integer")
		return 0
	}
	return n
}

func (p *parser) integer(field, s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		p.errs.Add(field, "must be a whole number")
		return 0
	}
	return n
}

func (p *parser) money(field, s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		p.errs.Add(field, "must be a number")
		return decimal.Zero
	}
	return d
}

func (p *parser) date(field, s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		p.errs.Add(field, "must be a date in YYYY-MM-DD format")
		return time.Time{}
	}
	return t
}

func (p *parser) err() error {
	if p.errs.Empty() {
		return nil
	}
	return &p.errs
}

func formatID(id uint) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

func formatOptionalID(id *uint) string {
	if id == nil {
		return ""
	}
	return formatID(*id)
}

func formatVersion(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
