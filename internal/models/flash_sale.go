package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FlashSaleWindow is a daily interval [Start, End) expressed in minutes after local midnight.
type FlashSaleWindow struct {
	Start int `json:"start_minute"`
	End   int `json:"end_minute"`
}

func (w FlashSaleWindow) Contains(minuteOfDay int) bool {
	return minuteOfDay >= w.Start && minuteOfDay < w.End
}

func (w FlashSaleWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.Start/60, w.Start%60, w.End/60, w.End%60)
}

// ParseFlashSaleWindow reads "HH:MM-HH:MM".
func ParseFlashSaleWindow(s string) (FlashSaleWindow, error) {
	startStr, endStr, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return FlashSaleWindow{}, fmt.Errorf("flash sale window %q: expected HH:MM-HH:MM", s)
	}

	start, err := parseClock(startStr)
	if err != nil {
		return FlashSaleWindow{}, fmt.Errorf("flash sale window %q: %w", s, err)
	}

	end, err := parseClock(endStr)
	if err != nil {
		return FlashSaleWindow{}, fmt.Errorf("flash sale window %q: %w", s, err)
	}

	if end <= start {
		return FlashSaleWindow{}, fmt.Errorf("flash sale window %q: end must be after start", s)
	}

	return FlashSaleWindow{Start: start, End: end}, nil
}

func parseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		mm = "0"
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("invalid hour %q", hh)
	}

	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid minute %q", mm)
	}

	return h*60 + m, nil
}

// FlashSaleState is derived from the clock on every evaluation and never stored.
type FlashSaleState struct {
	Active          bool       `json:"active"`
	WindowEnd       *time.Time `json:"window_end,omitempty"`
	NextWindowStart *time.Time `json:"next_window_start,omitempty"`
	EvaluatedAt     time.Time  `json:"evaluated_at"`
}
