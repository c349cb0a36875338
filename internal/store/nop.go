package store

import "github.com/alreinhart/TXSemiModel/internal/model"

// NopStore is a no-op store used in dry-run mode: the scrape pipeline runs
// end to end (fetch, extract, count) without persisting anything.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) UpsertCompany(name, platform string) (int64, error) { return 0, nil }

func (s *NopStore) UpsertJob(companyID int64, job model.Job) (bool, error) { return true, nil }

func (s *NopStore) RecordRun(run model.ScrapeRun) error { return nil }
