package services

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"io"
	"testing"

	"github.com/ayonpaul8906/trustbridge-new/internal/clients/trustvision"
	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"gorm.io/gorm"
)

// ---------- repositories ----------

type fakeUserRepo struct {
	users     map[string]*domain.User
	nextID    uint
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.Email] = user
	return user, nil
}

func (r *fakeUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindUserById(userID uint) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) SaveUser(user *domain.User) error {
	r.users[user.Email] = user
	return nil
}

type fakeProfileRepo struct {
	profiles  map[uint]*domain.Profile
	nextID    uint
	createErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uint]*domain.Profile{}, nextID: 1}
}

func (r *fakeProfileRepo) CreateProfile(profile *domain.Profile) error {
	if r.createErr != nil {
		return r.createErr
	}
	profile.ID = r.nextID
	r.nextID++
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) FindByUserID(userID uint) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) SaveProfile(profile *domain.Profile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) ListByRole(role string) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range r.profiles {
		if p.Role == role {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeAttemptRepo struct {
	byEmail map[string]*domain.RegistrationAttempt
	nextID  uint
	deleted []string
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{byEmail: map[string]*domain.RegistrationAttempt{}, nextID: 1}
}

func (r *fakeAttemptRepo) FindOrCreate(email string) (*domain.RegistrationAttempt, error) {
	if a, ok := r.byEmail[email]; ok {
		return a, nil
	}
	a := &domain.RegistrationAttempt{ID: r.nextID, Email: email}
	r.nextID++
	r.byEmail[email] = a
	return a, nil
}

func (r *fakeAttemptRepo) FindByEmail(email string) (*domain.RegistrationAttempt, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrAttemptNotFound
	}
	return a, nil
}

func (r *fakeAttemptRepo) SaveAttempt(attempt *domain.RegistrationAttempt) error {
	r.byEmail[attempt.Email] = attempt
	return nil
}

func (r *fakeAttemptRepo) DeleteAttempt(attempt *domain.RegistrationAttempt) error {
	delete(r.byEmail, attempt.Email)
	r.deleted = append(r.deleted, attempt.Email)
	return nil
}

type fakeScoreRepo struct {
	scores    map[uint]*domain.TrustScore
	history   []domain.ScoreHistoryEntry
	docs      []domain.FinancialDocument
	nextDocID uint
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{scores: map[uint]*domain.TrustScore{}, nextDocID: 1}
}

func (r *fakeScoreRepo) FindOrCreate(userID uint) (*domain.TrustScore, error) {
	if s, ok := r.scores[userID]; ok {
		return s, nil
	}
	s := &domain.TrustScore{UserID: userID}
	r.scores[userID] = s
	return s, nil
}

func (r *fakeScoreRepo) SaveScore(score *domain.TrustScore) error {
	r.scores[score.UserID] = score
	return nil
}

func (r *fakeScoreRepo) AddHistory(entry *domain.ScoreHistoryEntry) error {
	r.history = append(r.history, *entry)
	return nil
}

func (r *fakeScoreRepo) ListHistory(userID uint) ([]domain.ScoreHistoryEntry, error) {
	var out []domain.ScoreHistoryEntry
	for _, h := range r.history {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeScoreRepo) AddDocument(doc *domain.FinancialDocument) error {
	doc.ID = r.nextDocID
	r.nextDocID++
	r.docs = append(r.docs, *doc)
	return nil
}

func (r *fakeScoreRepo) RemoveDocument(userID, docID uint) error {
	for i, d := range r.docs {
		if d.UserID == userID && d.ID == docID {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeScoreRepo) ListDocuments(userID uint) ([]domain.FinancialDocument, error) {
	var out []domain.FinancialDocument
	for _, d := range r.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeLoanRepo struct {
	loans  map[uint]*domain.Loan
	nextID uint
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: map[uint]*domain.Loan{}, nextID: 1}
}

func (r *fakeLoanRepo) CreateLoan(loan *domain.Loan) error {
	loan.ID = r.nextID
	r.nextID++
	r.loans[loan.ID] = loan
	return nil
}

func (r *fakeLoanRepo) FindByID(loanID uint) (*domain.Loan, error) {
	l, ok := r.loans[loanID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *fakeLoanRepo) ListByUserID(userID uint) ([]domain.Loan, error) {
	var out []domain.Loan
	for _, l := range r.loans {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) SetStatus(loanID uint, status domain.LoanStatus) error {
	l, ok := r.loans[loanID]
	if !ok || l.Status != domain.LoanStatusPending {
		return gorm.ErrRecordNotFound
	}
	l.Status = status
	return nil
}

type fakeLenderRepo struct {
	offers []domain.LenderOffer
	nextID uint
}

func newFakeLenderRepo() *fakeLenderRepo {
	return &fakeLenderRepo{nextID: 1}
}

func (r *fakeLenderRepo) CreateOffer(offer *domain.LenderOffer) error {
	offer.ID = r.nextID
	r.nextID++
	r.offers = append(r.offers, *offer)
	return nil
}

func (r *fakeLenderRepo) ListOffersByUserID(userID uint) ([]domain.LenderOffer, error) {
	var out []domain.LenderOffer
	for _, o := range r.offers {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// ---------- collaborators ----------

type fakePasscodeStore struct {
	stored       map[string]string
	putCalls     int
	consumeCalls int
}

func newFakePasscodeStore() *fakePasscodeStore {
	return &fakePasscodeStore{stored: map[string]string{}}
}

func (s *fakePasscodeStore) Put(_ context.Context, email, codeHash string) error {
	s.putCalls++
	s.stored[email] = codeHash
	return nil
}

func (s *fakePasscodeStore) Consume(_ context.Context, email, codeHash string) (bool, error) {
	s.consumeCalls++
	if s.stored[email] != codeHash {
		return false, nil
	}
	delete(s.stored, email)
	return true, nil
}

type fakeVision struct {
	verifyCalls    int
	identityCalls  int
	financialCalls int

	verifyRes    *trustvision.FaceVerifyResponse
	identityRes  *trustvision.IdentityScoreResponse
	financialRes *trustvision.FinancialScoreResponse

	verifyErr    error
	identityErr  error
	financialErr error

	lastFinancialDocs []trustvision.StoredDocument
}

func (v *fakeVision) VerifyFace(_ context.Context, uid, name, phone string,
	_ string, _ io.Reader, _ string, _ io.Reader) (*trustvision.FaceVerifyResponse, error) {
	v.verifyCalls++
	if v.verifyErr != nil {
		return nil, v.verifyErr
	}
	return v.verifyRes, nil
}

func (v *fakeVision) ScoreIdentity(_ context.Context, uid, phone string,
	docs []trustvision.DocumentFile) (*trustvision.IdentityScoreResponse, error) {
	v.identityCalls++
	if v.identityErr != nil {
		return nil, v.identityErr
	}
	return v.identityRes, nil
}

func (v *fakeVision) ScoreFinancial(_ context.Context, uid string,
	docs []trustvision.StoredDocument) (*trustvision.FinancialScoreResponse, error) {
	v.financialCalls++
	v.lastFinancialDocs = docs
	if v.financialErr != nil {
		return nil, v.financialErr
	}
	return v.financialRes, nil
}

type fakeUploader struct {
	calls int
	err   error
}

func (u *fakeUploader) UploadBytes(_ context.Context, folder, filename string, _ []byte) (string, error) {
	u.calls++
	if u.err != nil {
		return "", u.err
	}
	return "https://cdn.example.com/" + folder + "/" + filename, nil
}

type publishedMessage struct {
	key   string
	value string
}

type fakeProducer struct {
	messages []publishedMessage
}

func (p *fakeProducer) PublishMessage(key, value []byte) error {
	p.messages = append(p.messages, publishedMessage{key: string(key), value: string(value)})
	return nil
}

// tinyJPEG returns a valid encoded image for the normalization path.
func tinyJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}
