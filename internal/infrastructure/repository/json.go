package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	domainRepo "github.com/sangkips/comanda-pos/internal/domain/repository"
)

// loadJSON decodes the document under key into dst. It reports false when the
// key has never been written.
func loadJSON(ctx context.Context, kv domainRepo.KVStore, key string, dst any) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// saveJSON encodes src and stores it under key. Failures are logged here so a
// caller that only returns the error still leaves a trace.
func saveJSON(ctx context.Context, kv domainRepo.KVStore, key string, src any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Put(ctx, key, raw); err != nil {
		log.Error().Err(err).Str("key", key).Int("bytes", len(raw)).Msg("persist failed")
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
