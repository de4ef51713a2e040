package users

import (
	"context"
	"strings"

	errs "xplore/pkg/errors"
	"xplore/pkg/logger"
	"xplore/pkg/tabular"
	"xplore/pkg/twitter"
)

// Client is the transport surface the lookup needs. *twitter.Client
// satisfies it.
type Client interface {
	UsersBy(ctx context.Context, ids []string) (*twitter.UsersResponse, error)
}

// Lookup fetches profiles for the given user IDs, batching requests to
// the API's per-request limit. Profiles come back in request order;
// IDs the API does not resolve are simply absent from the result.
func Lookup(ctx context.Context, client Client, ids []string, log logger.Logger) ([]twitter.User, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	if len(cleaned) == 0 {
		return nil, errs.New(errs.ErrorTypeInvalidParameter, "no user IDs to look up")
	}

	var profiles []twitter.User
	for start := 0; start < len(cleaned); start += twitter.UserLookupBatchSize {
		end := start + twitter.UserLookupBatchSize
		if end > len(cleaned) {
			end = len(cleaned)
		}

		batch := cleaned[start:end]
		response, err := client.UsersBy(ctx, batch)
		if err != nil {
			return nil, err
		}

		profiles = append(profiles, response.Data...)
		log.DebugWithFields("user batch resolved", map[string]interface{}{
			"requested": len(batch),
			"resolved":  len(response.Data),
		})
	}

	log.InfoWithFields("user lookup complete", map[string]interface{}{
		"requested": len(cleaned),
		"resolved":  len(profiles),
	})

	return profiles, nil
}

// IDsFromTable extracts user IDs from one column of a previously
// exported CSV or XLSX file, dropping blank cells.
func IDsFromTable(path, column string) ([]string, error) {
	table, err := tabular.ReadTable(path)
	if err != nil {
		return nil, err
	}

	values, err := table.Column(column)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			ids = append(ids, v)
		}
	}
	return ids, nil
}
