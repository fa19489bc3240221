package request

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"
)

const refCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const refMaxAttempts = 10

// randomRef returns "NOC" + year + n random uppercase alphanumerics.
func randomRef(year int, n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = refCharset[int(b)%len(refCharset)]
	}
	return fmt.Sprintf("NOC%d%s", year, buf), nil
}

// generateReferenceID produces a unique, non-guessable reference id. After
// ten collisions it falls back to a longer random suffix.
func (s *Store) generateReferenceID(ctx context.Context) (string, error) {
	year := time.Now().Year()
	for attempt := 0; attempt < refMaxAttempts; attempt++ {
		ref, err := randomRef(year, 8)
		if err != nil {
			return "", err
		}
		exists, err := s.referenceExists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !exists {
			return ref, nil
		}
	}
	return randomRef(year, 10)
}

func (s *Store) referenceExists(ctx context.Context, ref string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM noc_requests WHERE reference_id = $1", ref).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
