package validation

import (
	"strings"
	"unicode"

	"github.com/username/honorarios/src/models"
)

// StripUnprintable removes non-printable characters, allowing common whitespace
// like space, tab, newline, and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1 // Drop the rune
	}, s)
}

// SanitizeText strips unprintable runes and surrounding whitespace.
func SanitizeText(s string) string {
	return strings.TrimSpace(StripUnprintable(s))
}

// SanitizeTransaction cleans every free-text field of tx before it is stored.
func SanitizeTransaction(tx models.Transaction) models.Transaction {
	for _, f := range []*string{
		&tx.ID, &tx.TeamID, &tx.TransactionDate, &tx.ListingDate, &tx.ReservationDate,
		&tx.Address, &tx.HouseNumber, &tx.RealizedBy,
		&tx.PrimaryAdvisorID, &tx.AdditionalAdvisorID,
	} {
		*f = SanitizeText(*f)
	}
	tx.Type = models.OperationType(SanitizeText(string(tx.Type)))
	tx.Status = models.OperationStatus(SanitizeText(string(tx.Status)))
	return tx
}
