package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/rs/zerolog/log"

	"github.com/kumasuke/textractor/internal/cache"
	"github.com/kumasuke/textractor/internal/config"
	"github.com/kumasuke/textractor/internal/input"
	"github.com/kumasuke/textractor/internal/textract"
)

// syncRequest describes one invocation of a synchronous operation.
type syncRequest struct {
	input     string
	output    string
	format    string
	noCache   bool
	operation string
	features  []types.FeatureType
}

func (r syncRequest) featureNames() []string {
	names := make([]string, len(r.features))
	for i, f := range r.features {
		names[i] = string(f)
	}
	return names
}

// runSync resolves the input, consults the local response cache for
// local files, calls the service on a miss, and writes the result.
func runSync(ctx context.Context, cfg *config.Config, req syncRequest) error {
	src, err := input.Resolve(req.input)
	if err != nil {
		return err
	}
	if src.IsLocal() {
		if err := input.CheckSinglePage(src); err != nil {
			return err
		}
	}

	var doc textract.Document
	var docBytes []byte
	if src.IsLocal() {
		docBytes, err = src.Bytes()
		if err != nil {
			return err
		}
		doc.Bytes = docBytes
	} else {
		doc.S3 = &src.S3
	}

	// Only byte inputs are cacheable; an S3 object's content is not
	// available locally to key on.
	var store *cache.Cache
	var cacheKey string
	if cfg.Cache.Enabled && !req.noCache && src.IsLocal() {
		store, err = cache.Open(cfg.Cache.Path)
		if err != nil {
			log.Warn().Err(err).Msg("Response cache unavailable")
		} else {
			defer store.Close()
			cacheKey = cache.Key(docBytes, req.operation, req.featureNames())
			if data, err := store.Get(ctx, cacheKey); err == nil {
				var result textract.Result
				if uerr := json.Unmarshal(data, &result); uerr != nil {
					log.Warn().Err(uerr).Msg("Discarding corrupt cache entry")
				} else {
					if err := writeResult(&result, req.output, req.format); err != nil {
						return err
					}
					printSummary(&result, req.output)
					return nil
				}
			} else if !errors.Is(err, cache.ErrMiss) {
				log.Warn().Err(err).Msg("Response cache read failed")
			}
		}
	}

	awsCfg, err := newAWSConfig(ctx, cfg)
	if err != nil {
		return err
	}
	client := textract.NewFromConfig(awsCfg)

	var result *textract.Result
	switch req.operation {
	case "detect-document-text":
		result, err = client.Detect(ctx, doc)
	case "analyze-document":
		result, err = client.Analyze(ctx, doc, req.features)
	default:
		return fmt.Errorf("unknown operation %q", req.operation)
	}
	if err != nil {
		if textract.IsUnsupportedDocument(err) {
			return fmt.Errorf("%s is not a document Textract can process: %w", req.input, err)
		}
		return err
	}

	if store != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := store.Put(ctx, cacheKey, data); err != nil {
				log.Warn().Err(err).Msg("Response cache write failed")
			}
		}
	}

	if err := writeResult(result, req.output, req.format); err != nil {
		return err
	}
	printSummary(result, req.output)
	return nil
}
