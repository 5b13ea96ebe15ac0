package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/apperrors"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/repository"
)

// fakeRepos is an in-memory repository.Manager. WithinTx does not roll back.
type fakeRepos struct {
	mu      sync.Mutex
	users   map[string]*models.User
	pymes   map[string]*models.Pyme
	credits map[string]*models.Credit
	docs    []models.CreditDocument
	reviews []models.CreditReview
	txs     int
}

func newFakeRepos() *fakeRepos {
	return &fakeRepos{
		users:   map[string]*models.User{},
		pymes:   map[string]*models.Pyme{},
		credits: map[string]*models.Credit{},
	}
}

func (f *fakeRepos) Users() repository.UserRepository         { return fakeUsers{f} }
func (f *fakeRepos) Pymes() repository.PymeRepository         { return fakePymes{f} }
func (f *fakeRepos) Credits() repository.CreditRepository     { return fakeCredits{f} }
func (f *fakeRepos) Documents() repository.DocumentRepository { return fakeDocs{f} }
func (f *fakeRepos) Reviews() repository.ReviewRepository     { return fakeReviews{f} }

func (f *fakeRepos) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Manager) error) error {
	f.mu.Lock()
	f.txs++
	f.mu.Unlock()
	return fn(ctx, f)
}

func (f *fakeRepos) addUser(u *models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return u
}

func (f *fakeRepos) addPyme(p *models.Pyme) *models.Pyme {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pymes[p.ID] = p
	return p
}

func (f *fakeRepos) addCredit(c *models.Credit) *models.Credit {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credits[c.ID] = c
	return c
}

type fakeUsers struct{ f *fakeRepos }

func (r fakeUsers) Create(_ context.Context, u *models.User) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperrors.Validation("email already registered")
		}
	}
	cp := *u
	r.f.users[u.ID] = &cp
	return nil
}

func (r fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if u, ok := r.f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.NotFound("user not found")
}

func (r fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, u := range r.f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (r fakeUsers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	u, ok := r.f.users[id]
	if !ok {
		return apperrors.NotFound("user not found")
	}
	u.PasswordHash = hash
	return nil
}

type fakePymes struct{ f *fakeRepos }

func (r fakePymes) Create(_ context.Context, p *models.Pyme) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.pymes {
		if existing.OwnerID == p.OwnerID {
			return apperrors.Validation("user already has a pyme")
		}
		if existing.CUIT == p.CUIT {
			return apperrors.Validation("cuit already registered")
		}
	}
	cp := *p
	r.f.pymes[p.ID] = &cp
	return nil
}

func (r fakePymes) GetByID(_ context.Context, id string) (*models.Pyme, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if p, ok := r.f.pymes[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperrors.NotFound("pyme not found")
}

func (r fakePymes) GetByIDForUpdate(ctx context.Context, id string) (*models.Pyme, error) {
	return r.GetByID(ctx, id)
}

func (r fakePymes) GetByOwner(_ context.Context, ownerID string) (*models.Pyme, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, p := range r.f.pymes {
		if p.OwnerID == ownerID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("pyme not found")
}

func (r fakePymes) GetByOwnerForUpdate(ctx context.Context, ownerID string) (*models.Pyme, error) {
	return r.GetByOwner(ctx, ownerID)
}

func (r fakePymes) Update(_ context.Context, p *models.Pyme) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.pymes[p.ID]; !ok {
		return apperrors.NotFound("pyme not found")
	}
	cp := *p
	r.f.pymes[p.ID] = &cp
	return nil
}

type fakeCredits struct{ f *fakeRepos }

func (r fakeCredits) Create(_ context.Context, c *models.Credit) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	cp := *c
	r.f.credits[c.ID] = &cp
	return nil
}

func (r fakeCredits) GetByID(_ context.Context, id string) (*models.Credit, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if c, ok := r.f.credits[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, apperrors.NotFound("credit not found")
}

func (r fakeCredits) GetByIDForUpdate(ctx context.Context, id string) (*models.Credit, error) {
	return r.GetByID(ctx, id)
}

func (r fakeCredits) ListByPyme(_ context.Context, pymeID string) ([]models.Credit, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := []models.Credit{}
	for _, c := range r.f.credits {
		if c.PymeID == pymeID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeCredits) UpdateStatus(_ context.Context, id string, status models.CreditStatus, at time.Time) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	c, ok := r.f.credits[id]
	if !ok {
		return apperrors.NotFound("credit not found")
	}
	c.Status = status
	c.UpdatedAt = at
	return nil
}

type fakeDocs struct{ f *fakeRepos }

func (r fakeDocs) Create(_ context.Context, d *models.CreditDocument) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.docs = append(r.f.docs, *d)
	return nil
}

func (r fakeDocs) ListByCredit(_ context.Context, creditID string) ([]models.CreditDocument, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := []models.CreditDocument{}
	for _, d := range r.f.docs {
		if d.CreditID == creditID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeReviews struct{ f *fakeRepos }

func (r fakeReviews) Create(_ context.Context, rv *models.CreditReview) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.reviews = append(r.f.reviews, *rv)
	return nil
}

func (r fakeReviews) ListByCredit(_ context.Context, creditID string) ([]models.CreditReview, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := []models.CreditReview{}
	for _, rv := range r.f.reviews {
		if rv.CreditID == creditID {
			out = append(out, rv)
		}
	}
	return out, nil
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to, subject, body})
	return m.err
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
