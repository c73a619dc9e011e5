package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/taskbay/api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeOtpProvider struct {
	sent        []string
	resent      []string
	verified    []string
	rejectOtp   bool
	unavailable bool
}

func (f *fakeOtpProvider) SendOtp(ctx context.Context, mobile string) error {
	if f.unavailable {
		return ErrProviderUnavailable
	}
	f.sent = append(f.sent, mobile)
	return nil
}

func (f *fakeOtpProvider) ResendOtp(ctx context.Context, mobile string) error {
	if f.unavailable {
		return ErrProviderUnavailable
	}
	f.resent = append(f.resent, mobile)
	return nil
}

func (f *fakeOtpProvider) VerifyOtp(ctx context.Context, mobile, otp string) error {
	if f.unavailable {
		return ErrProviderUnavailable
	}
	if f.rejectOtp {
		return ErrOtpRejected
	}
	f.verified = append(f.verified, mobile)
	return nil
}

type fakeUserRepo struct {
	users       map[primitive.ObjectID]*models.User
	lastLogins  map[primitive.ObjectID]int
	mirrorPlans map[primitive.ObjectID]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:       map[primitive.ObjectID]*models.User{},
		lastLogins:  map[primitive.ObjectID]int{},
		mirrorPlans: map[primitive.ObjectID]string{},
	}
}

func (f *fakeUserRepo) FindByMobile(ctx context.Context, mobile string) (*models.User, error) {
	for _, u := range f.users {
		if u.Mobile == mobile {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Mobile == user.Mobile {
			return nil, errors.New("user already exists")
		}
	}
	user.ID = primitive.NewObjectID()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) TouchLastLogin(ctx context.Context, id primitive.ObjectID) error {
	f.lastLogins[id]++
	return nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) SetKycStatus(ctx context.Context, id primitive.ObjectID, status models.KycStatus) error {
	user, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	user.KycStatus = status
	return nil
}

func (f *fakeUserRepo) SetFcmToken(ctx context.Context, id primitive.ObjectID, token *models.FcmToken) error {
	return nil
}

func (f *fakeUserRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	user, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	user.IsActive = false
	return nil
}

func (f *fakeUserRepo) SetSubscriptionMirror(ctx context.Context, id primitive.ObjectID, subID primitive.ObjectID, plan string, expiresAt time.Time) error {
	f.mirrorPlans[id] = plan
	return nil
}

type fakeWorkerRepo struct {
	profiles     map[primitive.ObjectID]*models.WorkerProfile
	duplicate    bool
	lastQuery    *models.WorkerQuery
	queryResults []models.WorkerProfile
	queryTotal   int64
	locations    map[primitive.ObjectID]models.GeoLocation
	subs         map[primitive.ObjectID]models.SubscriptionPlan
	stats        models.WorkerStats
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{
		profiles:  map[primitive.ObjectID]*models.WorkerProfile{},
		locations: map[primitive.ObjectID]models.GeoLocation{},
		subs:      map[primitive.ObjectID]models.SubscriptionPlan{},
	}
}

func (f *fakeWorkerRepo) CreateWorkerProfile(ctx context.Context, profile *models.WorkerProfile) (*models.WorkerProfile, error) {
	if f.duplicate {
		return nil, models.ErrDuplicateProfile
	}
	profile.ID = primitive.NewObjectID()
	f.profiles[profile.UserID] = profile
	return profile, nil
}

func (f *fakeWorkerRepo) GetWorkerByUserID(ctx context.Context, userID primitive.ObjectID) (*models.WorkerProfile, error) {
	return f.profiles[userID], nil
}

func (f *fakeWorkerRepo) GetWorkerByID(ctx context.Context, id primitive.ObjectID) (*models.WorkerProfile, error) {
	for _, p := range f.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeWorkerRepo) UpdateWorkerProfile(ctx context.Context, userID primitive.ObjectID, fields bson.M) (bool, error) {
	_, ok := f.profiles[userID]
	return ok, nil
}

func (f *fakeWorkerRepo) DeleteWorkerProfile(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	_, ok := f.profiles[userID]
	delete(f.profiles, userID)
	return ok, nil
}

func (f *fakeWorkerRepo) QueryWorkers(ctx context.Context, query models.WorkerQuery) ([]models.WorkerProfile, int64, error) {
	f.lastQuery = &query
	return f.queryResults, f.queryTotal, nil
}

func (f *fakeWorkerRepo) UpdateWorkerLocation(ctx context.Context, userID primitive.ObjectID, location models.GeoLocation) (bool, error) {
	if _, ok := f.profiles[userID]; !ok {
		return false, nil
	}
	f.locations[userID] = location
	return true, nil
}

func (f *fakeWorkerRepo) SetWorkerSubscription(ctx context.Context, userID primitive.ObjectID, plan models.SubscriptionPlan, expiresAt time.Time) (bool, error) {
	f.subs[userID] = plan
	return true, nil
}

func (f *fakeWorkerRepo) SetRatingAggregate(ctx context.Context, workerID primitive.ObjectID, rating float64, totalReviews int) error {
	return nil
}

func (f *fakeWorkerRepo) GetWorkerStats(ctx context.Context) (*models.WorkerStats, error) {
	return &f.stats, nil
}

type fakeJobRepo struct {
	jobs      map[primitive.ObjectID]*models.JobPost
	lastQuery *models.JobQuery
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[primitive.ObjectID]*models.JobPost{}}
}

func (f *fakeJobRepo) CreateJob(ctx context.Context, job *models.JobPost) (*models.JobPost, error) {
	job.ID = primitive.NewObjectID()
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeJobRepo) GetJobByID(ctx context.Context, id primitive.ObjectID) (*models.JobPost, error) {
	return f.jobs[id], nil
}

func (f *fakeJobRepo) QueryJobs(ctx context.Context, query models.JobQuery) ([]models.JobPost, int64, error) {
	f.lastQuery = &query
	return []models.JobPost{}, 0, nil
}

func (f *fakeJobRepo) AddApplication(ctx context.Context, jobID, userID primitive.ObjectID) (bool, error) {
	job, ok := f.jobs[jobID]
	if !ok {
		return false, nil
	}
	for _, id := range job.Applications {
		if id == userID {
			return false, models.ErrAlreadyApplied
		}
	}
	job.Applications = append(job.Applications, userID)
	return true, nil
}

func (f *fakeJobRepo) SetJobStatus(ctx context.Context, jobID, posterID primitive.ObjectID, status models.JobStatus) (bool, error) {
	job, ok := f.jobs[jobID]
	if !ok || job.PostedBy != posterID {
		return false, nil
	}
	job.Status = status
	return true, nil
}

func (f *fakeJobRepo) DeleteJob(ctx context.Context, jobID, posterID primitive.ObjectID) (bool, error) {
	job, ok := f.jobs[jobID]
	if !ok || job.PostedBy != posterID {
		return false, nil
	}
	delete(f.jobs, jobID)
	return true, nil
}

type fakeSubscriptionRepo struct {
	subs       map[primitive.ObjectID]*models.Subscription
	paymentIDs map[primitive.ObjectID]string
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{
		subs:       map[primitive.ObjectID]*models.Subscription{},
		paymentIDs: map[primitive.ObjectID]string{},
	}
}

func (f *fakeSubscriptionRepo) CreateSubscription(ctx context.Context, sub *models.Subscription) (*models.Subscription, error) {
	sub.ID = primitive.NewObjectID()
	f.subs[sub.ID] = sub
	return sub, nil
}

func (f *fakeSubscriptionRepo) GetSubscriptionByID(ctx context.Context, id primitive.ObjectID) (*models.Subscription, error) {
	return f.subs[id], nil
}

func (f *fakeSubscriptionRepo) SetPaymentID(ctx context.Context, id primitive.ObjectID, paymentID string) error {
	if _, ok := f.subs[id]; !ok {
		return errors.New("subscription not found")
	}
	f.paymentIDs[id] = paymentID
	f.subs[id].PaymentID = paymentID
	return nil
}

func (f *fakeSubscriptionRepo) ActivateByPaymentID(ctx context.Context, paymentID string) (*models.Subscription, error) {
	for _, sub := range f.subs {
		if sub.PaymentID == paymentID && sub.Status == models.SubscriptionPending {
			sub.Status = models.SubscriptionActive
			return sub, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) SetSubscriptionStatus(ctx context.Context, id primitive.ObjectID, status models.SubscriptionStatus) error {
	sub, ok := f.subs[id]
	if !ok {
		return errors.New("subscription not found")
	}
	sub.Status = status
	return nil
}

type fakeGateway struct {
	orders       []float64
	failOrders   bool
	orderID      string
	validSigs    map[string]bool
	acceptAnySig bool
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amount float64) (*PaymentOrder, error) {
	if f.failOrders {
		return nil, errors.New("gateway down")
	}
	f.orders = append(f.orders, amount)
	return &PaymentOrder{
		ID:       f.orderID,
		Amount:   int64(amount * 100),
		Currency: "INR",
		Status:   "created",
	}, nil
}

func (f *fakeGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	if f.acceptAnySig {
		return true
	}
	return f.validSigs[signature]
}
