package library

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/marcus/charview/internal/models"
)

const idPrefix = "cv-"

// importParallelism bounds concurrent card file reads during a scan.
const importParallelism = 8

// NormalizeCardID ensures a card ID has the cv- prefix. Bare hashes like
// "a1b2c3d4" become "cv-a1b2c3d4".
func NormalizeCardID(id string) string {
	if id == "" || strings.HasPrefix(id, idPrefix) {
		return id
	}
	return idPrefix + id
}

// cardFileV2 is the wrapped card format ({"spec":"chara_card_v2","data":{...}}).
type cardFileV2 struct {
	Spec string                `json:"spec"`
	Data *models.CharacterCard `json:"data"`
}

// ParseCardFile decodes a card JSON document, accepting both the flat format
// and the v2 wrapper.
func ParseCardFile(data []byte) (*models.CharacterCard, error) {
	var wrapped cardFileV2
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Data != nil && strings.HasPrefix(wrapped.Spec, "chara_card") {
		return wrapped.Data, nil
	}

	var card models.CharacterCard
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("parse card: %w", err)
	}
	return &card, nil
}

// ContentHash returns the hex blake2b-256 digest of a card file's bytes.
// It keys import dedupe and derives stable card IDs.
func ContentHash(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ImportResult summarizes one directory scan.
type ImportResult struct {
	Imported int
	Skipped  int
	Failed   []string
}

// ImportDir scans dir for *.json card files and upserts new ones into the
// library. Files whose content hash is already present are skipped. Reads
// run in parallel; writes are serialized through the importer.
func (l *Library) ImportDir(ctx context.Context, dir string) (ImportResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read import dir: %w", err)
	}

	var (
		mu     sync.Mutex
		result ImportResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(importParallelism)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				mu.Lock()
				result.Failed = append(result.Failed, entry.Name())
				mu.Unlock()
				return nil
			}

			card, err := ParseCardFile(data)
			if err != nil {
				mu.Lock()
				result.Failed = append(result.Failed, entry.Name())
				mu.Unlock()
				return nil
			}

			hash := ContentHash(data)

			mu.Lock()
			defer mu.Unlock()

			exists, err := l.HasContentHash(hash)
			if err != nil {
				return err
			}
			if exists {
				result.Skipped++
				return nil
			}

			card.ContentHash = hash
			if card.ID == "" {
				card.ID = idPrefix + hash[:8]
			} else {
				card.ID = NormalizeCardID(card.ID)
			}
			if card.Avatar == "" {
				card.Avatar = entry.Name()
			}

			if err := l.UpsertCard(card); err != nil {
				return err
			}
			result.Imported++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}
