package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PublicSearchLimit caps the rows returned by a public search.
const PublicSearchLimit = 10

const resumeColumns = `id, user_id, title, resume_data, template_config, is_public, coalesce(share_url, ''), created_at, updated_at`

type ResumesRepo struct {
	pool *pgxpool.Pool
}

func NewResumesRepo(pool *pgxpool.Pool) *ResumesRepo {
	return &ResumesRepo{pool: pool}
}

func (r *ResumesRepo) Create(ctx context.Context, res *domain.SavedResume) error {
	dataB, err := json.Marshal(res.ResumeData)
	if err != nil {
		return err
	}
	tplB, err := json.Marshal(res.TemplateConfig)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO resumes (id, user_id, title, resume_data, template_config, is_public, share_url, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,nullif($7, ''),$8,$9)`,
		res.ID, res.UserID, res.Title, dataB, tplB, res.IsPublic, res.ShareURL, res.CreatedAt, res.UpdatedAt)
	return translate(err)
}

func (r *ResumesRepo) Get(ctx context.Context, id uuid.UUID) (*domain.SavedResume, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	return scanResume(row)
}

func (r *ResumesRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedResume, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectResumes(rows)
}

// Update applies p inside a transaction so concurrent patches do not lose
// each other's fields.
func (r *ResumesRepo) Update(ctx context.Context, id uuid.UUID, p domain.ResumePatch) (*domain.SavedResume, error) {
	var out *domain.SavedResume
	err := r.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		cur, err := scanResume(tx.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		p.Apply(cur)
		cur.UpdatedAt = time.Now().UTC()

		dataB, err := json.Marshal(cur.ResumeData)
		if err != nil {
			return err
		}
		tplB, err := json.Marshal(cur.TemplateConfig)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE resumes SET title = $2, resume_data = $3, template_config = $4, is_public = $5, share_url = nullif($6, ''), updated_at = $7 WHERE id = $1`,
			id, cur.Title, dataB, tplB, cur.IsPublic, cur.ShareURL, cur.UpdatedAt)
		if err != nil {
			return err
		}
		out = cur
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *ResumesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchPublic matches public resumes by title, case-insensitively.
func (r *ResumesRepo) SearchPublic(ctx context.Context, query string) ([]domain.SavedResume, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+resumeColumns+` FROM resumes
		WHERE is_public = true AND title ILIKE '%' || $1 || '%'
		ORDER BY updated_at DESC LIMIT $2`, query, PublicSearchLimit)
	if err != nil {
		return nil, err
	}
	return collectResumes(rows)
}

func scanResume(row pgx.Row) (*domain.SavedResume, error) {
	var (
		res         domain.SavedResume
		dataB, tplB []byte
	)
	if err := row.Scan(&res.ID, &res.UserID, &res.Title, &dataB, &tplB, &res.IsPublic, &res.ShareURL, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	if err := json.Unmarshal(dataB, &res.ResumeData); err != nil {
		return nil, fmt.Errorf("resume %s: decode resume_data: %w", res.ID, err)
	}
	if err := json.Unmarshal(tplB, &res.TemplateConfig); err != nil {
		return nil, fmt.Errorf("resume %s: decode template_config: %w", res.ID, err)
	}
	return &res, nil
}

func collectResumes(rows pgx.Rows) ([]domain.SavedResume, error) {
	defer rows.Close()
	out := []domain.SavedResume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}
