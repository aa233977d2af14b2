package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/CrestNiraj12/socialfeed/domain"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	tokenExpiry     = 24 * time.Hour
	maxUploadMemory = 8 << 20
	imageField      = "ImageFile"
)

// API serves the feed REST surface from an in-memory Store.
type API struct {
	db     *Store
	tokens *tokenSigner
	hasher *passwordHasher
	router *mux.Router
}

// New creates the API and registers its routes. Tokens are signed with secret.
func New(db *Store, secret []byte) *API {
	api := API{
		db:     db,
		tokens: newTokenSigner(secret, tokenExpiry),
		hasher: newPasswordHasher(defaultArgon2Params),
		router: mux.NewRouter(),
	}
	api.endpoints()

	return &api
}

// Router returns the request handler.
func (api *API) Router() *mux.Router {
	return api.router
}

func (api *API) endpoints() {
	api.router.Use(api.requestIDMiddleware)
	api.router.Use(api.loggingMiddleware)

	api.router.HandleFunc("/uploads/{name}", api.imageHandler).Methods(http.MethodGet)

	r := api.router.PathPrefix("/api").Subrouter()
	r.Use(api.headerMiddleware)

	r.HandleFunc("/Auth/login", api.loginHandler).Methods(http.MethodPost)
	r.HandleFunc("/Auth/register", api.registerHandler).Methods(http.MethodPost)

	r.Handle("/posts", api.requireAuth(api.latestPostsHandler)).Methods(http.MethodGet)
	r.Handle("/posts", api.requireAuth(api.createPostHandler)).Methods(http.MethodPost)
	r.Handle("/posts/{id:[0-9]+}", api.requireAuth(api.editPostHandler)).Methods(http.MethodPut)
	r.Handle("/posts/{id:[0-9]+}/comments", api.requireAuth(api.commentHandler)).Methods(http.MethodPost)
	r.Handle("/posts/{id:[0-9]+}/reaction", api.requireAuth(api.reactionHandler)).Methods(http.MethodPost)
	r.Handle("/my-posts", api.requireAuth(api.myPostsHandler)).Methods(http.MethodGet)
	r.Handle("/profile", api.requireAuth(api.profileHandler)).Methods(http.MethodGet)
	r.Handle("/upload/image", api.requireAuth(api.uploadImageHandler)).Methods(http.MethodPost)
	r.Handle("/upload/image", api.requireAuth(api.deleteImageHandler)).Methods(http.MethodDelete)
}

func (api *API) loginHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		log.Debugf("[loginHandler][%s] failed to decode body: %v", sID, err)
		return
	}

	u, err := api.db.UserByEmail(r.Context(), req.Email)
	if err == nil {
		err = api.hasher.Compare(u.PasswordHash, req.Password)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid email or password")
		log.Debugf("[loginHandler][%s] login failed for %q: %v", sID, req.Email, err)
		return
	}

	token, err := api.tokens.Issue(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[loginHandler][%s] failed to sign token: %v", sID, err)
		return
	}

	writeData(w, http.StatusOK, "Login successful", loginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    toUserJSON(u, true),
	})
}

func (api *API) registerHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		log.Debugf("[registerHandler][%s] failed to decode body: %v", sID, err)
		return
	}
	if req.ConfirmPassword == "" {
		req.ConfirmPassword = req.Password
	}

	reg := domain.Registration{
		Name:              req.Name,
		Email:             req.Email,
		Password:          req.Password,
		ConfirmPassword:   req.ConfirmPassword,
		ProfilePictureURL: req.ProfilePictureURL,
	}
	if err := domain.ValidateRegistration(reg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := api.hasher.Hash(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[registerHandler][%s] failed to hash password: %v", sID, err)
		return
	}

	u, err := api.db.AddUser(r.Context(), User{
		Name:              strings.TrimSpace(req.Name),
		Email:             strings.TrimSpace(req.Email),
		PasswordHash:      hash,
		ProfilePictureURL: strings.TrimSpace(req.ProfilePictureURL),
	})
	if errors.Is(err, ErrEmailTaken) {
		writeError(w, http.StatusConflict, "Email is already registered")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[registerHandler][%s] AddUser() returned error: %v", sID, err)
		return
	}

	log.Infof("[registerHandler][%s] registered user %d", sID, u.ID)
	writeData(w, http.StatusCreated, "Registration successful", registerResponse{
		Success: true,
		Message: "Registration successful",
		User:    toUserJSON(u, true),
	})
}

func (api *API) latestPostsHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	page, limit, ok := pageParams(w, r)
	if !ok {
		return
	}

	posts, _, err := api.db.LatestPosts(r.Context(), page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[latestPostsHandler][%s] LatestPosts() returned error: %v", sID, err)
		return
	}

	out := make([]feedPostJSON, 0, len(posts))
	for _, p := range posts {
		out = append(out, api.feedPost(r, p))
	}
	writeData(w, http.StatusOK, "Posts retrieved successfully", out)
}

func (api *API) myPostsHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	page, limit, ok := pageParams(w, r)
	if !ok {
		return
	}

	posts, _, err := api.db.UserPosts(r.Context(), userID(r.Context()), page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[myPostsHandler][%s] UserPosts() returned error: %v", sID, err)
		return
	}

	out := make([]ownPostJSON, 0, len(posts))
	for _, p := range posts {
		out = append(out, api.ownPost(r, p))
	}
	writeData(w, http.StatusOK, "Posts retrieved successfully", out)
}

func (api *API) createPostHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	req, ok := decodePost(w, r)
	if !ok {
		return
	}

	p, err := api.db.AddPost(r.Context(), Post{
		UserID:  userID(r.Context()),
		Title:   req.Title,
		Content: req.Content,
		Image:   req.Image,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[createPostHandler][%s] AddPost() returned error: %v", sID, err)
		return
	}

	log.Debugf("[createPostHandler][%s] created post %d", sID, p.ID)
	writeData(w, http.StatusCreated, "Post created successfully", api.feedPost(r, p))
}

func (api *API) editPostHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	id, ok := postID(w, r)
	if !ok {
		return
	}
	req, ok := decodePost(w, r)
	if !ok {
		return
	}

	p, err := api.db.UpdatePost(r.Context(), userID(r.Context()), Post{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
		Image:   req.Image,
	})
	switch {
	case errors.Is(err, ErrPostNotFound):
		writeError(w, http.StatusNotFound, "Post not found")
		return
	case errors.Is(err, ErrNotPostOwner):
		writeError(w, http.StatusForbidden, "You can only edit your own posts")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[editPostHandler][%s] UpdatePost() returned error: %v", sID, err)
		return
	}

	writeData(w, http.StatusOK, "Post updated successfully", api.feedPost(r, p))
}

func (api *API) commentHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	id, ok := postID(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Comment content is required")
		return
	}

	uid := userID(r.Context())
	c, err := api.db.AddComment(r.Context(), Comment{PostID: id, UserID: uid, Content: strings.TrimSpace(req.Content)})
	if errors.Is(err, ErrPostNotFound) {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[commentHandler][%s] AddComment() returned error: %v", sID, err)
		return
	}

	out := commentJSON{ID: c.ID, PostID: c.PostID, UserID: c.UserID, Content: c.Content, CreatedAt: c.CreatedAt}
	if u, err := api.db.User(r.Context(), uid); err == nil {
		uj := toUserJSON(u, false)
		out.User = &uj
	}
	writeData(w, http.StatusCreated, "Comment added successfully", out)
}

func (api *API) reactionHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	id, ok := postID(w, r)
	if !ok {
		return
	}

	var req reactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Type == "" {
		req.Type = domain.ReactionLike
	}

	liked, count, err := api.db.ToggleReaction(r.Context(), id, userID(r.Context()), req.Type)
	if errors.Is(err, ErrPostNotFound) {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[reactionHandler][%s] ToggleReaction() returned error: %v", sID, err)
		return
	}

	msg := "Reaction removed"
	if liked {
		msg = "Reaction added"
	}
	writeData(w, http.StatusOK, msg, reactionResponse{Liked: liked, Count: count})
}

func (api *API) profileHandler(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())
	u, err := api.db.User(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	posts, comments, reactions := api.db.UserStats(r.Context(), uid)
	writeData(w, http.StatusOK, "Profile retrieved successfully", profileJSON{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		CreatedAt:     u.CreatedAt,
		PostCount:     posts,
		CommentCount:  comments,
		ReactionCount: reactions,
	})
}

func (api *API) uploadImageHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxImageSize+maxUploadMemory)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart body")
		log.Debugf("[uploadImageHandler][%s] failed to parse form: %v", sID, err)
		return
	}

	file, header, err := r.FormFile(imageField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, domain.MaxImageSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read image")
		return
	}
	if len(data) > domain.MaxImageSize {
		writeError(w, http.StatusBadRequest, domain.ErrImageTooLarge.Error())
		return
	}
	contentType := http.DetectContentType(data)
	if !domain.SupportedImageType(contentType) {
		writeError(w, http.StatusBadRequest, domain.ErrUnsupportedImage.Error())
		return
	}

	id, err := uuid.NewV4()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[uploadImageHandler][%s] failed to generate image name: %v", sID, err)
		return
	}
	name := id.String() + strings.ToLower(path.Ext(header.Filename))
	api.db.SaveImage(r.Context(), Image{Name: name, ContentType: contentType, Data: data})

	log.Debugf("[uploadImageHandler][%s] stored %s (%d bytes)", sID, name, len(data))
	writeJSON(w, http.StatusOK, envelope{
		Message: "Image uploaded successfully",
		Status:  0,
		Data:    uploadResponse{ImageURL: imageURL(r, name)},
	})
}

func (api *API) deleteImageHandler(w http.ResponseWriter, r *http.Request) {
	var req deleteImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ImageURL) == "" {
		writeError(w, http.StatusBadRequest, "Image URL is required")
		return
	}

	name := path.Base(strings.TrimSpace(req.ImageURL))
	if err := api.db.DeleteImage(r.Context(), name); err != nil {
		writeError(w, http.StatusNotFound, "Image not found")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Message: "Image deleted successfully", Status: 0})
}

func (api *API) imageHandler(w http.ResponseWriter, r *http.Request) {
	img, err := api.db.Image(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	_, _ = w.Write(img.Data)
}

func (api *API) feedPost(r *http.Request, p Post) feedPostJSON {
	comments, reactions := api.db.Counts(r.Context(), p.ID)
	out := feedPostJSON{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Image:         p.Image,
		CreatedAt:     p.CreatedAt,
		Author:        userJSON{ID: p.UserID},
		CommentCount:  comments,
		ReactionCount: reactions,
	}
	if u, err := api.db.User(r.Context(), p.UserID); err == nil {
		out.Author = toUserJSON(u, false)
	}
	return out
}

func (api *API) ownPost(r *http.Request, p Post) ownPostJSON {
	out := ownPostJSON{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Content:   p.Content,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		User:      userJSON{ID: p.UserID},
		Comments:  []commentJSON{},
		Reactions: []reactionJSON{},
	}
	if u, err := api.db.User(r.Context(), p.UserID); err == nil {
		out.User = toUserJSON(u, false)
	}
	for _, c := range api.db.Comments(r.Context(), p.ID) {
		out.Comments = append(out.Comments, commentJSON{ID: c.ID, PostID: c.PostID, UserID: c.UserID, Content: c.Content, CreatedAt: c.CreatedAt})
	}
	for _, re := range api.db.Reactions(r.Context(), p.ID) {
		out.Reactions = append(out.Reactions, reactionJSON{ID: re.ID, PostID: re.PostID, UserID: re.UserID, Type: re.Type})
	}
	return out
}

func toUserJSON(u User, withEmail bool) userJSON {
	out := userJSON{ID: u.ID, Name: u.Name}
	if withEmail {
		out.Email = u.Email
	}
	return out
}

func pageParams(w http.ResponseWriter, r *http.Request) (page, limit int, ok bool) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(r.URL.Query().Get("pageSize"))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		writeError(w, http.StatusBadRequest, "pageSize parameter is too big")
		return 0, 0, false
	}
	return page, limit, true
}

func postID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post ID")
		return 0, false
	}
	return id, true
}

func decodePost(w http.ResponseWriter, r *http.Request) (postRequest, bool) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return postRequest{}, false
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	req.Image = strings.TrimSpace(req.Image)
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "Content is required")
		return postRequest{}, false
	}
	return req, true
}

func imageURL(r *http.Request, name string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/uploads/%s", scheme, r.Host, name)
}

func writeData(w http.ResponseWriter, code int, msg string, data any) {
	writeJSON(w, code, envelope{Message: msg, Status: code, Data: data})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, envelope{Message: msg, Status: code})
}

func writeJSON(w http.ResponseWriter, code int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Errorf("[writeJSON] failed to encode response: %v", err)
	}
}
