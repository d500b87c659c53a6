package stats

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"keydrill/internal/highscore"
	"keydrill/internal/model"
)

const trendWidthFallback = 80

// RenderScores prints the ranked highscore buckets, one table per mode key.
func RenderScores(w io.Writer, store *highscore.Store, limit int) error {
	keys := store.ModeKeys()
	if len(keys) == 0 {
		_, err := fmt.Fprintln(w, "No highscores yet.")
		return err
	}
	for _, key := range keys {
		if _, err := fmt.Fprintf(w, "[%s]\n", key); err != nil {
			return err
		}
		cols := []column{
			{title: "#", rightAlign: true},
			{title: "Net WPM", rightAlign: true},
			{title: "Accuracy", rightAlign: true},
			{title: "Raw WPM", rightAlign: true},
			{title: "Errors", rightAlign: true},
			{title: "Chars", rightAlign: true},
			{title: "When"},
		}
		entries := store.Top(key, limit)
		rows := make([][]string, 0, len(entries))
		for i, e := range entries {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				fmt.Sprintf("%.2f", e.NetWPM),
				fmt.Sprintf("%.1f%%", e.Accuracy*100),
				fmt.Sprintf("%.2f", e.RawWPM),
				fmt.Sprintf("%d", e.Errors),
				fmt.Sprintf("%d", e.TotalChars),
				e.Timestamp,
			})
		}
		for _, line := range renderTable(cols, rows) {
			if _, err := fmt.Fprintln(w, " "+line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints a summary of past sessions plus a net-WPM trend
// sparkline smoothed over the given window.
func RenderHistory(w io.Writer, records []model.SessionRecord, window int) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalNet, totalAcc, bestNet float64
	for _, rec := range records {
		totalNet += rec.NetWPM
		totalAcc += rec.Accuracy
		if rec.NetWPM > bestNet {
			bestNet = rec.NetWPM
		}
	}
	count := float64(len(records))
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", len(records)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Net WPM: %.2f\n", totalNet/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Net WPM: %.2f\n", bestNet); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.2f%%\n", (totalAcc/count)*100); err != nil {
		return err
	}

	values := make([]float64, len(records))
	for i, rec := range records {
		values[i] = rec.NetWPM
	}
	values = MovingAverage(values, window)
	if width := trendWidth(); len(values) > width {
		values = values[len(values)-width:]
	}
	if _, err := fmt.Fprintf(w, "Trend: %s\n", Sparkline(values)); err != nil {
		return err
	}
	return nil
}

func trendWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= len("Trend: ") {
		return trendWidthFallback
	}
	return width - len("Trend: ")
}
