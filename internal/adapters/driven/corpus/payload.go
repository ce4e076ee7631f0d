package corpus

import "github.com/custodia-labs/litarchive/internal/core/domain"

// record is one work as it appears in a payload.
type record struct {
	ID       string          `json:"id,omitempty" yaml:"id,omitempty"`
	WorkName string          `json:"work_name,omitempty" yaml:"work_name,omitempty"`
	Author   domain.Author   `json:"author" yaml:"author"`
	Analysis domain.Analysis `json:"analysis" yaml:"analysis"`
}

// envelope is the processed output format with a generation timestamp.
type envelope struct {
	GeneratedDate string   `json:"generated_date,omitempty" yaml:"generated_date,omitempty"`
	Works         []record `json:"works" yaml:"works"`
}

func (r record) work() domain.Work {
	w := domain.Work{ID: r.ID, Author: r.Author, Analysis: r.Analysis}
	if w.Analysis.Name == "" {
		w.Analysis.Name = r.WorkName
	}
	return w
}

func toWorks(records []record) []domain.Work {
	works := make([]domain.Work, len(records))
	for i, r := range records {
		works[i] = r.work()
	}
	return works
}

func toRecords(works []domain.Work) []record {
	records := make([]record, len(works))
	for i, w := range works {
		records[i] = record{ID: w.ID, Author: w.Author, Analysis: w.Analysis}
	}
	return records
}
