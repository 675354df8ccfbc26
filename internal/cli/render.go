package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sobirin-dev/hendshake/internal/domain"
)

func writeList(w io.Writer, entries []domain.Entry) error {
	if _, err := fmt.Fprintf(w, "Total Items: %d\n", len(entries)); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := writeCard(w, e); err != nil {
			return err
		}
	}
	return nil
}

func writeCard(w io.Writer, e domain.Entry) error {
	booking := "No"
	if e.BookingRequired {
		booking = "Yes"
	}

	_, err := fmt.Fprintf(w,
		"[%d]\nActivity: %s\nPrice: $%s\nType: %s\nBooking Required: %s\nAccessibility: %s\n",
		e.ID,
		e.Label,
		e.Price,
		e.Category.DisplayName(),
		booking,
		strconv.FormatFloat(e.Accessibility, 'f', -1, 64),
	)
	return err
}
