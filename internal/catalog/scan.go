package catalog

import "context"

// Batched cursor reads for the sweep's mark phase. Every query is ordered by
// id and resumes from id > afterID, so memory stays bounded regardless of
// collection size. The WHERE clauses are existence filters: they only have to
// avoid loading documents that cannot hold a reference, never to be exact —
// over-inclusion is safe, exclusion of a referencing document is not.

// UsersWithAssets returns the next batch of users that may reference assets.
func (db *DB) UsersWithAssets(ctx context.Context, afterID string, limit int) ([]User, error) {
	var out []User
	err := db.WithContext(ctx).
		Where("id > ?", afterID).
		Where("profile_picture IS NOT NULL").
		Order("id").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CoachesWithAssets returns the next batch of coaches that may reference assets.
func (db *DB) CoachesWithAssets(ctx context.Context, afterID string, limit int) ([]Coach, error) {
	var out []Coach
	err := db.WithContext(ctx).
		Where("id > ?", afterID).
		Where("profile_picture IS NOT NULL OR cover_photo IS NOT NULL OR gallery IS NOT NULL OR video_introduction IS NOT NULL OR verification_documents IS NOT NULL").
		Order("id").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ProgramsWithAssets returns the next batch of programs that may reference assets.
// Module content is nested JSON, so any program with modules is loaded.
func (db *DB) ProgramsWithAssets(ctx context.Context, afterID string, limit int) ([]Program, error) {
	var out []Program
	err := db.WithContext(ctx).
		Where("id > ?", afterID).
		Where("cover_image IS NOT NULL OR preview_video IS NOT NULL OR modules IS NOT NULL").
		Order("id").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SessionsWithAssets returns the next batch of sessions that may reference assets.
func (db *DB) SessionsWithAssets(ctx context.Context, afterID string, limit int) ([]Session, error) {
	var out []Session
	err := db.WithContext(ctx).
		Where("id > ?", afterID).
		Where("recording IS NOT NULL OR shared_files IS NOT NULL OR whiteboards IS NOT NULL").
		Order("id").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MessagesWithAssets returns the next batch of messages with attachments.
func (db *DB) MessagesWithAssets(ctx context.Context, afterID string, limit int) ([]Message, error) {
	var out []Message
	err := db.WithContext(ctx).
		Where("id > ?", afterID).
		Where("attachments IS NOT NULL").
		Order("id").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// InvoicesWithAssets returns the next batch of invoices that may reference assets.
func (db *DB) InvoicesWithAssets(ctx context.Context, afterID string, limit int) ([]Invoice, error) {
	var out []Invoice
	err := db.WithContext(ctx).
		Where("id > ?", afterID).
		Where("document_id <> '' OR logo IS NOT NULL").
		Order("id").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// LeadsWithAssets returns the next batch of leads with attachments.
func (db *DB) LeadsWithAssets(ctx context.Context, afterID string, limit int) ([]Lead, error) {
	var out []Lead
	err := db.WithContext(ctx).
		Where("id > ?", afterID).
		Where("attachments IS NOT NULL").
		Order("id").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// EnrollmentsWithAssets returns the next batch of enrollments that may
// reference assets.
func (db *DB) EnrollmentsWithAssets(ctx context.Context, afterID string, limit int) ([]Enrollment, error) {
	var out []Enrollment
	err := db.WithContext(ctx).
		Where("id > ?", afterID).
		Where("certificate IS NOT NULL OR submissions IS NOT NULL").
		Order("id").
		Limit(limit).
		Find(&out).Error
	return out, err
}
