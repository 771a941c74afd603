package worker

import (
	"context"

	"github.com/mhartley/sqeprep/internal/logger"
)

// QuestionImporter loads a question file into the database.
// Declared here rather than importing the services package so jobs stay
// decoupled from service construction.
type QuestionImporter interface {
	ImportFile(ctx context.Context, path string) (int, error)
}

// DashboardRefresher rebuilds one user's cached dashboard.
type DashboardRefresher interface {
	RefreshUser(ctx context.Context, userID int64) error
}

// ImportQuestionsJob loads a seed file of questions in the background.
type ImportQuestionsJob struct {
	Importer QuestionImporter
	Path     string
}

func (j *ImportQuestionsJob) Name() string { return "import_questions" }

func (j *ImportQuestionsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	count, err := j.Importer.ImportFile(ctx, j.Path)
	if err != nil {
		return err
	}
	log.Info("seed import finished: %d questions from %s", count, j.Path)
	return nil
}

// StatsRefreshJob rebuilds a user's dashboard cache after reward-bearing
// activity so the next dashboard read is a cache hit.
type StatsRefreshJob struct {
	Refresher DashboardRefresher
	UserID    int64
}

func (j *StatsRefreshJob) Name() string { return "stats_refresh" }

func (j *StatsRefreshJob) Run(ctx context.Context) error {
	return j.Refresher.RefreshUser(ctx, j.UserID)
}

// Queue is the submission facade handed to services. It satisfies the
// services' refresher hook without exposing the pool itself.
type Queue struct {
	pool      *Pool
	refresher DashboardRefresher
}

func NewQueue(pool *Pool, refresher DashboardRefresher) *Queue {
	return &Queue{pool: pool, refresher: refresher}
}

func (q *Queue) EnqueueStatsRefresh(userID int64) {
	q.pool.TrySubmit(&StatsRefreshJob{Refresher: q.refresher, UserID: userID})
}

func (q *Queue) EnqueueImport(importer QuestionImporter, path string) {
	q.pool.TrySubmit(&ImportQuestionsJob{Importer: importer, Path: path})
}
