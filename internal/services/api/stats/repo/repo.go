// Package repo provides postgres access for stats
package repo

import (
	"context"

	"veracity/internal/modkit/repokit"
)

// Repo is the minimal persistence surface for stats
type Repo interface {
	Overview(ctx context.Context) (Overview, error)
}

// RiskCount is one risk level's record count
type RiskCount struct {
	Risk  string
	Count int64
}

// Overview is the rollup over verification_records
type Overview struct {
	Total           int64
	ByRisk          []RiskCount
	AvgScore        float64
	AvgProcessingMs float64
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Overview(ctx context.Context) (Overview, error) {
	var out Overview

	const totals = `
select count(*), coalesce(avg(score), 0), coalesce(avg(processing_ms), 0)
from verification_records
`
	if err := r.q.QueryRow(ctx, totals).Scan(&out.Total, &out.AvgScore, &out.AvgProcessingMs); err != nil {
		return Overview{}, err
	}

	const byRisk = `
select risk, count(*)
from verification_records
group by risk
order by count(*) desc, risk asc
`
	rows, err := r.q.Query(ctx, byRisk)
	if err != nil {
		return Overview{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var rc RiskCount
		if err := rows.Scan(&rc.Risk, &rc.Count); err != nil {
			return Overview{}, err
		}
		out.ByRisk = append(out.ByRisk, rc)
	}
	return out, rows.Err()
}
