// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package series

import "context"

// Repository is the storage contract for series rows.
//
// List resumes strictly after afterID (0 means from the start) and reports
// via hasMore whether at least one further row exists past the returned
// page. Delete reports whether a row was actually removed so the service
// can keep the operation idempotent while still logging real deletions.
type Repository interface {
	List(ctx context.Context, f Filter, afterID int64, limit int) (items []*Series, hasMore bool, err error)
	Get(ctx context.Context, id int64) (*Series, error)
	Create(ctx context.Context, s *Series) error
	Update(ctx context.Context, id int64, p Patch) (*Series, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
