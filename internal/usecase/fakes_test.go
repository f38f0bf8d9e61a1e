package usecase

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/internal/domain/repository"
	"github.com/Mattyonemillion/henlo/internal/domain/service"
	"github.com/Mattyonemillion/henlo/pkg/errors"
)

type fakeListingRepo struct {
	listings map[string]*entity.Listing
}

func newFakeListingRepo(listings ...*entity.Listing) *fakeListingRepo {
	repo := &fakeListingRepo{listings: make(map[string]*entity.Listing)}
	for _, l := range listings {
		repo.listings[l.ID] = l
	}
	return repo
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	r.listings[listing.ID] = listing
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	listing, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing not found", nil)
	}
	return listing, nil
}

func (r *fakeListingRepo) GetBySlug(ctx context.Context, slug string) (*entity.Listing, error) {
	for _, l := range r.listings {
		if l.Slug == slug {
			return l, nil
		}
	}
	return nil, errors.NotFound("Listing not found", nil)
}

func (r *fakeListingRepo) List(ctx context.Context, filter repository.ListingFilter, limit, offset int) ([]*entity.Listing, int64, error) {
	var result []*entity.Listing
	for _, l := range r.listings {
		if repository.MatchesFilter(l, filter) {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

func (r *fakeListingRepo) ListBySellerID(ctx context.Context, sellerID, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	var result []*entity.Listing
	for _, l := range r.listings {
		if l.SellerID != sellerID {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		result = append(result, l)
	}
	return result, int64(len(result)), nil
}

func (r *fakeListingRepo) Update(ctx context.Context, listing *entity.Listing) error {
	if _, ok := r.listings[listing.ID]; !ok {
		return errors.NotFound("Listing not found", nil)
	}
	r.listings[listing.ID] = listing
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id string) error {
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) IncrementViews(ctx context.Context, id string) error {
	if l, ok := r.listings[id]; ok {
		l.Views++
	}
	return nil
}

func (r *fakeListingRepo) MarkSold(ctx context.Context, id string) error {
	listing, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing not found", nil)
	}
	// Same already-sold guard the Firestore implementation runs in its
	// transaction: soldAt stays pinned to the first call.
	if listing.Status == entity.ListingStatusSold {
		return nil
	}
	now := time.Now()
	listing.Status = entity.ListingStatusSold
	listing.SoldAt = &now
	return nil
}

type fakePaymentRepo struct {
	payments map[string]*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*entity.Payment)}
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	payment, ok := r.payments[id]
	if !ok {
		return nil, errors.NotFound("Payment not found", nil)
	}
	return payment, nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Payment, int64, error) {
	var result []*entity.Payment
	for _, p := range r.payments {
		if p.BuyerID == buyerID {
			result = append(result, p)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakePaymentRepo) GetPaidByListingID(ctx context.Context, listingID string) (*entity.Payment, error) {
	for _, p := range r.payments {
		if p.ListingID == listingID && p.Status == entity.PaymentStatusPaid {
			return p, nil
		}
	}
	return nil, errors.NotFound("Payment not found", nil)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User not found", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("User not found", nil)
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.NotFound("User not found", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

type fakeConversationRepo struct {
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (r *fakeConversationRepo) GetOrCreate(ctx context.Context, conversation *entity.Conversation) (*entity.Conversation, error) {
	if existing, ok := r.conversations[conversation.ID]; ok {
		return existing, nil
	}
	r.conversations[conversation.ID] = conversation
	return conversation, nil
}

func (r *fakeConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation not found", nil)
	}
	return conversation, nil
}

func (r *fakeConversationRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	var result []*entity.Conversation
	for _, c := range r.conversations {
		if c.HasParticipant(userID) {
			result = append(result, c)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeConversationRepo) Update(ctx context.Context, conversation *entity.Conversation) error {
	r.conversations[conversation.ID] = conversation
	return nil
}

func (r *fakeConversationRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], message)
	return nil
}

func (r *fakeConversationRepo) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	messages := r.messages[conversationID]
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAt.Before(messages[j].CreatedAt) })
	return messages, int64(len(messages)), nil
}

func (r *fakeConversationRepo) MarkMessagesRead(ctx context.Context, conversationID, readerID string) error {
	for _, m := range r.messages[conversationID] {
		if m.SenderID != readerID {
			m.Read = true
		}
	}
	return nil
}

type fakeFavoriteRepo struct {
	favorites map[string]*entity.Favorite
	listings  *fakeListingRepo
}

func newFakeFavoriteRepo(listings *fakeListingRepo) *fakeFavoriteRepo {
	return &fakeFavoriteRepo{
		favorites: make(map[string]*entity.Favorite),
		listings:  listings,
	}
}

func (r *fakeFavoriteRepo) Add(ctx context.Context, userID, listingID string) (*entity.Favorite, error) {
	id := entity.FavoriteID(userID, listingID)
	if existing, ok := r.favorites[id]; ok {
		return existing, nil
	}
	favorite := &entity.Favorite{
		ID:        id,
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	}
	r.favorites[id] = favorite
	return favorite, nil
}

func (r *fakeFavoriteRepo) Remove(ctx context.Context, userID, listingID string) error {
	delete(r.favorites, entity.FavoriteID(userID, listingID))
	return nil
}

func (r *fakeFavoriteRepo) IsFavorite(ctx context.Context, userID, listingID string) (bool, error) {
	_, ok := r.favorites[entity.FavoriteID(userID, listingID)]
	return ok, nil
}

func (r *fakeFavoriteRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.FavoriteWithListing, int64, error) {
	var result []*entity.FavoriteWithListing
	for _, f := range r.favorites {
		if f.UserID != userID {
			continue
		}
		listing := r.listings.listings[f.ListingID]
		if listing == nil {
			continue
		}
		result = append(result, &entity.FavoriteWithListing{
			ID:        f.ID,
			UserID:    f.UserID,
			ListingID: f.ListingID,
			Listing:   listing,
			CreatedAt: f.CreatedAt,
		})
	}
	return result, int64(len(result)), nil
}

func (r *fakeFavoriteRepo) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, f := range r.favorites {
		if f.UserID == userID {
			count++
		}
	}
	return count, nil
}

type fakeReviewRepo struct {
	reviews map[string]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*entity.Review)}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review not found", nil)
	}
	return review, nil
}

func (r *fakeReviewRepo) GetByReviewerAndListing(ctx context.Context, reviewerID, revieweeID, listingID string) (*entity.Review, error) {
	for _, review := range r.reviews {
		if review.ReviewerID == reviewerID && review.RevieweeID == revieweeID && review.ListingID == listingID {
			return review, nil
		}
	}
	return nil, errors.NotFound("Review not found", nil)
}

func (r *fakeReviewRepo) ListByRevieweeID(ctx context.Context, revieweeID string, limit, offset int) ([]*entity.Review, int64, error) {
	var result []*entity.Review
	for _, review := range r.reviews {
		if review.RevieweeID == revieweeID {
			result = append(result, review)
		}
	}
	return result, int64(len(result)), nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var result []*entity.Category
	for _, c := range r.categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, errors.NotFound("Category not found", nil)
	}
	return category, nil
}

func (r *fakeCategoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, errors.NotFound("Category not found", nil)
}

func (r *fakeCategoryRepo) Seed(ctx context.Context, categories []*entity.Category) error {
	if len(r.categories) > 0 {
		return nil
	}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return nil
}

// fakeFileService records deletions so image cleanup can be asserted. The
// cleanup runs on a goroutine, hence the mutex.
type fakeFileService struct {
	mu      sync.Mutex
	deleted []string
}

func (s *fakeFileService) UploadImage(ctx context.Context, file io.Reader, contentType, ownerID string) (*service.UploadedFile, error) {
	path := ownerID + "/" + uuid.New().String()
	return &service.UploadedFile{URL: "https://storage.googleapis.com/henlo/" + path, Path: path}, nil
}

func (s *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeFileService) Close() error { return nil }

func (s *fakeFileService) deletedPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

// fakeGateway is a scriptable PaymentGatewayService.
type fakeGateway struct {
	createErr   error
	createCalls int
	payments    map[string]*service.GatewayPayment
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{payments: make(map[string]*service.GatewayPayment)}
}

func (g *fakeGateway) CreatePayment(ctx context.Context, req service.CreatePaymentRequest) (*service.GatewayPayment, error) {
	g.createCalls++
	if g.createErr != nil {
		return nil, g.createErr
	}
	payment := &service.GatewayPayment{
		ID:          "tr_" + uuid.New().String()[:10],
		Status:      entity.PaymentStatusPending,
		Amount:      req.Amount,
		CheckoutURL: "https://www.mollie.com/checkout/test",
		Metadata:    req.Metadata,
	}
	g.payments[payment.ID] = payment
	return payment, nil
}

func (g *fakeGateway) GetPayment(ctx context.Context, id string) (*service.GatewayPayment, error) {
	payment, ok := g.payments[id]
	if !ok {
		return nil, errors.NotFound("Payment not found", nil)
	}
	return payment, nil
}

type fakeBroadcaster struct {
	messages []*entity.Message
	updates  map[string][]*entity.Conversation
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{updates: make(map[string][]*entity.Conversation)}
}

func (b *fakeBroadcaster) BroadcastNewMessage(message *entity.Message) {
	b.messages = append(b.messages, message)
}

func (b *fakeBroadcaster) NotifyConversationUpdate(userID string, conversation *entity.Conversation) {
	b.updates[userID] = append(b.updates[userID], conversation)
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(userID, action string) (bool, time.Duration) {
	return true, 0
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(userID, action string) (bool, time.Duration) {
	return false, time.Minute
}
