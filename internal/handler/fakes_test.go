package handler

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/social-network/internal/auth"
	"github.com/iliyamo/social-network/internal/model"
	"github.com/iliyamo/social-network/internal/repository"
)

// memDB is the shared in-memory state behind the fake stores.  The fakes
// mirror the MySQL repositories' semantics: sentinel errors, idempotent
// duplicate inserts guarded by composite keys, derived counters, ownership
// checks.  One mutex plays the role of the store's transactional
// isolation.
type memDB struct {
	mu sync.Mutex

	users    map[uint64]model.User
	follows  map[[2]uint64]model.Follow
	posts    map[uint64]model.Post
	comments map[uint64]model.Comment
	likes    map[[2]uint64]model.Like
	files    map[uint64]model.File

	nextUser, nextPost, nextComment, nextLike, nextFile uint64
}

func newMemDB() *memDB {
	return &memDB{
		users:    map[uint64]model.User{},
		follows:  map[[2]uint64]model.Follow{},
		posts:    map[uint64]model.Post{},
		comments: map[uint64]model.Comment{},
		likes:    map[[2]uint64]model.Like{},
		files:    map[uint64]model.File{},
	}
}

type memUsers struct{ db *memDB }
type memGraph struct{ db *memDB }
type memPosts struct{ db *memDB }
type memLedger struct{ db *memDB }
type memFiles struct{ db *memDB }

var (
	_ repository.UserStore        = memUsers{}
	_ repository.SocialGraphStore = memGraph{}
	_ repository.PostStore        = memPosts{}
	_ repository.EngagementLedger = memLedger{}
	_ repository.FileStore        = memFiles{}
)

// view assembles a PostView with live counters.  Caller must hold db.mu.
func (db *memDB) view(p model.Post) model.PostView {
	v := model.PostView{
		ID:        p.ID,
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
		Author:    db.users[p.AuthorID].Summary(),
	}
	for key := range db.likes {
		if key[0] == p.ID {
			v.TotalLikes++
		}
	}
	for _, cm := range db.comments {
		if cm.PostID == p.ID {
			v.TotalComments++
		}
	}
	return v
}

// ----- UserStore -----

func (s memUsers) Create(_ context.Context, firstName, lastName, email, password string) (model.User, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range db.users {
		if u.Email == email {
			return model.User{}, repository.ErrEmailExists
		}
	}
	hashed, err := auth.GenerateHash(password)
	if err != nil {
		return model.User{}, err
	}
	db.nextUser++
	u := model.User{
		ID:           db.nextUser,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hashed.Digest,
		PasswordSalt: hashed.Salt,
		CreatedAt:    time.Now().UTC(),
	}
	db.users[u.ID] = u
	return u, nil
}

func (s memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s memUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (s memUsers) Exists(_ context.Context, id uint64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	_, ok := s.db.users[id]
	return ok, nil
}

func (s memUsers) List(_ context.Context) ([]model.UserSummary, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []model.UserSummary{}
	for _, u := range s.db.users {
		out = append(out, u.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memUsers) Profile(_ context.Context, id uint64) (model.Profile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return model.Profile{}, repository.ErrUserNotFound
	}
	p := model.Profile{UserSummary: u.Summary(), CreatedAt: u.CreatedAt}
	for edge := range s.db.follows {
		if edge[1] == id {
			p.TotalFollowers++
		}
		if edge[0] == id {
			p.TotalFollowing++
		}
	}
	return p, nil
}

func (s memUsers) ReplaceAvatar(_ context.Context, userID uint64, file model.File) (uint64, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[userID]
	if !ok {
		return 0, repository.ErrUserNotFound
	}
	if u.AvatarFileID != nil {
		delete(db.files, *u.AvatarFileID)
	}
	db.nextFile++
	file.ID = db.nextFile
	file.CreatedAt = time.Now().UTC()
	db.files[file.ID] = file
	id := file.ID
	u.AvatarFileID = &id
	db.users[userID] = u
	return id, nil
}

func (s memUsers) UpdatePassword(_ context.Context, userID uint64, password string) error {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	hashed, err := auth.GenerateHash(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hashed.Digest
	u.PasswordSalt = hashed.Salt
	db.users[userID] = u
	return nil
}

// ----- SocialGraphStore -----

func (s memGraph) Add(_ context.Context, followerID, followeeID uint64) error {
	if followerID == followeeID {
		return repository.ErrSelfFollow
	}
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.users[followerID]; !ok {
		return repository.ErrUserNotFound
	}
	if _, ok := db.users[followeeID]; !ok {
		return repository.ErrUserNotFound
	}
	key := [2]uint64{followerID, followeeID}
	if _, ok := db.follows[key]; ok {
		return nil // idempotent
	}
	db.follows[key] = model.Follow{FollowerID: followerID, FolloweeID: followeeID, CreatedAt: time.Now().UTC()}
	return nil
}

func (s memGraph) Remove(_ context.Context, followerID, followeeID uint64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	key := [2]uint64{followerID, followeeID}
	if _, ok := s.db.follows[key]; !ok {
		return repository.ErrFollowNotFound
	}
	delete(s.db.follows, key)
	return nil
}

func (s memGraph) Followers(_ context.Context, userID uint64, limit int) ([]model.UserSummary, error) {
	return s.adjacent(userID, limit, false)
}

func (s memGraph) Following(_ context.Context, userID uint64, limit int) ([]model.UserSummary, error) {
	return s.adjacent(userID, limit, true)
}

func (s memGraph) adjacent(userID uint64, limit int, outgoing bool) ([]model.UserSummary, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []model.UserSummary{}
	for edge := range s.db.follows {
		var other uint64
		switch {
		case outgoing && edge[0] == userID:
			other = edge[1]
		case !outgoing && edge[1] == userID:
			other = edge[0]
		default:
			continue
		}
		out = append(out, s.db.users[other].Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s memGraph) Has(_ context.Context, followerID, followeeID uint64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	_, ok := s.db.follows[[2]uint64{followerID, followeeID}]
	return ok, nil
}

// ----- PostStore -----

func (s memPosts) Create(_ context.Context, authorID uint64, text string) (model.PostView, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	db.nextPost++
	p := model.Post{ID: db.nextPost, AuthorID: authorID, Text: text, CreatedAt: time.Now().UTC()}
	db.posts[p.ID] = p
	return db.view(p), nil
}

func (s memPosts) GetByID(_ context.Context, postID uint64) (model.PostView, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.posts[postID]
	if !ok {
		return model.PostView{}, repository.ErrPostNotFound
	}
	return s.db.view(p), nil
}

func (s memPosts) ListByAuthor(_ context.Context, authorID uint64) ([]model.PostView, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []model.PostView{}
	for _, p := range s.db.posts {
		if p.AuthorID == authorID {
			out = append(out, s.db.view(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s memPosts) Feed(_ context.Context, userID uint64) ([]model.PostView, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	authors := map[uint64]bool{userID: true}
	for edge := range s.db.follows {
		if edge[0] == userID {
			authors[edge[1]] = true
		}
	}
	out := []model.PostView{}
	for _, p := range s.db.posts {
		if authors[p.AuthorID] {
			out = append(out, s.db.view(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s memPosts) Delete(_ context.Context, postID, requesterID uint64) error {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.posts[postID]
	if !ok {
		return repository.ErrPostNotFound
	}
	if p.AuthorID != requesterID {
		return repository.ErrForbidden
	}
	for id, cm := range db.comments {
		if cm.PostID == postID {
			delete(db.comments, id)
		}
	}
	for key := range db.likes {
		if key[0] == postID {
			delete(db.likes, key)
		}
	}
	delete(db.posts, postID)
	return nil
}

// ----- EngagementLedger -----

func (s memLedger) AddLike(_ context.Context, postID, userID uint64) (model.LikeView, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.posts[postID]; !ok {
		return model.LikeView{}, repository.ErrPostNotFound
	}
	key := [2]uint64{postID, userID}
	l, ok := db.likes[key]
	if !ok {
		db.nextLike++
		l = model.Like{ID: db.nextLike, PostID: postID, UserID: userID, LikedAt: time.Now().UTC()}
		db.likes[key] = l
	}
	return model.LikeView{ID: l.ID, PostID: l.PostID, LikedAt: l.LikedAt, User: db.users[userID].Summary()}, nil
}

func (s memLedger) RemoveLike(_ context.Context, postID, userID uint64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	key := [2]uint64{postID, userID}
	if _, ok := s.db.likes[key]; !ok {
		return repository.ErrLikeNotFound
	}
	delete(s.db.likes, key)
	return nil
}

func (s memLedger) Likes(_ context.Context, postID uint64) ([]model.LikeView, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.posts[postID]; !ok {
		return nil, repository.ErrPostNotFound
	}
	out := []model.LikeView{}
	for key, l := range s.db.likes {
		if key[0] == postID {
			out = append(out, model.LikeView{ID: l.ID, PostID: l.PostID, LikedAt: l.LikedAt, User: s.db.users[l.UserID].Summary()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memLedger) AddComment(_ context.Context, postID, authorID uint64, text string) (model.CommentView, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.posts[postID]; !ok {
		return model.CommentView{}, repository.ErrPostNotFound
	}
	db.nextComment++
	cm := model.Comment{ID: db.nextComment, PostID: postID, AuthorID: authorID, Text: text, CreatedAt: time.Now().UTC()}
	db.comments[cm.ID] = cm
	return model.CommentView{ID: cm.ID, PostID: cm.PostID, Text: cm.Text, CreatedAt: cm.CreatedAt, Author: db.users[authorID].Summary()}, nil
}

func (s memLedger) Comments(_ context.Context, postID uint64) ([]model.CommentView, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.posts[postID]; !ok {
		return nil, repository.ErrPostNotFound
	}
	out := []model.CommentView{}
	for _, cm := range s.db.comments {
		if cm.PostID == postID {
			out = append(out, model.CommentView{ID: cm.ID, PostID: cm.PostID, Text: cm.Text, CreatedAt: cm.CreatedAt, Author: s.db.users[cm.AuthorID].Summary()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memLedger) RemoveComment(_ context.Context, commentID, postID, requesterID uint64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	cm, ok := s.db.comments[commentID]
	if !ok || cm.PostID != postID {
		return repository.ErrCommentNotFound
	}
	if cm.AuthorID != requesterID {
		return repository.ErrForbidden
	}
	delete(s.db.comments, commentID)
	return nil
}

// ----- FileStore -----

func (s memFiles) GetByID(_ context.Context, id uint64) (model.File, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	f, ok := s.db.files[id]
	if !ok {
		return model.File{}, repository.ErrFileNotFound
	}
	return f, nil
}
