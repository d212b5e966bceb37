package user

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"backoffice/internal/auth"
	"backoffice/internal/domain/image"
	"backoffice/internal/domain/listing"
	"backoffice/internal/domain/user"
	"backoffice/internal/store/memory"
	"backoffice/internal/store/repositories"
	"backoffice/internal/uploads"
	"backoffice/internal/validate"
)

func newTestService(t *testing.T) (*Service, *memory.Store, uploads.Dir) {
	t.Helper()
	s := memory.New()
	up := uploads.New(t.TempDir())
	return NewService(s.Users(), s.Images(), up), s, up
}

func superAdmin() auth.Actor {
	return auth.Actor{UserID: "root", Roles: []string{user.RoleSuperAdmin}}
}

func validInsert() InsertRequest {
	return InsertRequest{
		Email:     "alice@example.com",
		Password:  "Str0ng!pass",
		FirstName: "Alice",
		LastName:  "Anders",
		Contact:   "+1 (555) 123-4567",
	}
}

func TestInsertDefaultsToStandardRole(t *testing.T) {
	svc, store, _ := newTestService(t)

	id, err := svc.Insert(context.Background(), auth.Actor{}, validInsert(), nil)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	u, err := store.Users().FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find inserted: %v", err)
	}
	if len(u.Roles) != 1 || u.Roles[0] != user.RoleStandard {
		t.Fatalf("roles = %v, want [standard]", u.Roles)
	}
	if u.PasswordHash == "Str0ng!pass" {
		t.Fatal("password stored in plaintext")
	}
	if !u.Active {
		t.Fatal("new account should start active")
	}
}

func TestInsertRoleAssignmentRequiresSuperAdmin(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Insert(ctx, auth.Actor{UserID: "u", Roles: []string{user.RoleAdmin}},
		validInsert(), []string{user.RoleSuperAdmin})
	if !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	// Fail-closed: nothing was written.
	if n, _ := store.Users().Count(ctx, user.Criteria{}, ""); n != 0 {
		t.Fatalf("user count after denied insert = %d, want 0", n)
	}

	if _, err := svc.Insert(ctx, superAdmin(), validInsert(), []string{user.RoleAdmin}); err != nil {
		t.Fatalf("super-admin insert with roles: %v", err)
	}
}

func TestInsertRejectsWeakPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validInsert()
	req.Password = "Abcdefg1" // no symbol
	_, err := svc.Insert(context.Background(), auth.Actor{}, req, nil)

	var fe *validate.FieldError
	if !errors.As(err, &fe) || fe.Field != "password" {
		t.Fatalf("err = %v, want password field error", err)
	}
}

func TestInsertRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Insert(ctx, auth.Actor{}, validInsert(), nil); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := svc.Insert(ctx, auth.Actor{}, validInsert(), nil)
	var fe *validate.FieldError
	if !errors.As(err, &fe) || fe.Field != "email" {
		t.Fatalf("err = %v, want email field error", err)
	}
}

func TestFindRequiresAdminRole(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Find(ctx, auth.Actor{UserID: "u", Roles: []string{user.RoleStandard}},
		listing.Query{}, user.Criteria{})
	if !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("standard role list err = %v, want ErrForbidden", err)
	}

	if _, err := svc.Find(ctx, superAdmin(), listing.Query{}, user.Criteria{}); err != nil {
		t.Fatalf("super-admin list: %v", err)
	}
}

func TestUpdateValidatesOnlyPresentFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.Insert(ctx, auth.Actor{}, validInsert(), nil)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	bad := "not a valid name!"
	err = svc.Update(ctx, superAdmin(), id, user.Update{FirstName: &bad})
	var fe *validate.FieldError
	if !errors.As(err, &fe) || fe.Field != "firstName" {
		t.Fatalf("err = %v, want firstName field error", err)
	}

	// Unchanged after the rejected update.
	u, err := svc.FindOne(ctx, superAdmin(), id)
	if err != nil {
		t.Fatalf("findOne: %v", err)
	}
	if u.Profile.FirstName != "Alice" {
		t.Fatalf("firstName = %q after rejected update, want Alice", u.Profile.FirstName)
	}

	// A partial update that omits firstName leaves it untouched and
	// validates nothing else.
	last := "Brown"
	if err := svc.Update(ctx, superAdmin(), id, user.Update{LastName: &last}); err != nil {
		t.Fatalf("partial update: %v", err)
	}
	u, _ = svc.FindOne(ctx, superAdmin(), id)
	if u.Profile.FirstName != "Alice" || u.Profile.LastName != "Brown" {
		t.Fatalf("profile = %+v, want Alice Brown", u.Profile)
	}
}

func TestDeleteIsRoleGatedAndSoft(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	id, _ := svc.Insert(ctx, auth.Actor{}, validInsert(), nil)

	err := svc.Delete(ctx, auth.Actor{UserID: "a", Roles: []string{user.RoleAdmin}}, id)
	if !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("admin delete err = %v, want ErrForbidden", err)
	}
	u, _ := store.Users().FindByID(ctx, id)
	if u.Deleted {
		t.Fatal("record mutated by a denied operation")
	}

	if err := svc.Delete(ctx, superAdmin(), id); err != nil {
		t.Fatalf("super-admin delete: %v", err)
	}
	u, _ = store.Users().FindByID(ctx, id)
	if !u.Deleted {
		t.Fatal("delete should soft-delete, flag not set")
	}
}

func TestDeactivateAndActivate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	id, _ := svc.Insert(ctx, auth.Actor{}, validInsert(), nil)

	if err := svc.Deactivate(ctx, superAdmin(), id); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice@example.com", "Str0ng!pass"); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("login on deactivated account err = %v, want ErrForbidden", err)
	}

	if err := svc.Activate(ctx, superAdmin(), id); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice@example.com", "Str0ng!pass"); err != nil {
		t.Fatalf("login after reactivation: %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	id, _ := svc.Insert(ctx, auth.Actor{}, validInsert(), nil)

	if err := svc.ResetPassword(ctx, superAdmin(), id, "weak"); err == nil {
		t.Fatal("weak replacement password accepted")
	}
	if err := svc.ResetPassword(ctx, superAdmin(), id, "N3w!passwd"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice@example.com", "Str0ng!pass"); err == nil {
		t.Fatal("old password still accepted after reset")
	}
	if _, err := svc.Authenticate(ctx, "alice@example.com", "N3w!passwd"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestDeleteImageBestEffort(t *testing.T) {
	svc, store, up := newTestService(t)
	ctx := context.Background()

	id, _ := svc.Insert(ctx, auth.Actor{}, validInsert(), nil)

	// Attach an image + thumb directly through the store, with real files.
	img := &image.File{ID: "img1", Ext: "png", OwnerID: id, UploadedAt: time.Now()}
	th := &image.File{ID: "th1", Ext: "png", OwnerID: id, UploadedAt: time.Now()}
	if err := store.Images().SaveImage(ctx, img); err != nil {
		t.Fatalf("save image: %v", err)
	}
	if err := store.Images().SaveThumb(ctx, th); err != nil {
		t.Fatalf("save thumb: %v", err)
	}
	for _, p := range []string{up.ImagePath("img1", "png"), up.ThumbPath("th1", "png")} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	attachImage(t, store, id, "img1", "th1")

	if err := svc.DeleteImage(ctx, auth.Actor{UserID: id, Roles: []string{user.RoleStandard}}); err != nil {
		t.Fatalf("deleteImage: %v", err)
	}

	// Metadata gone, profile fields cleared.
	if _, err := store.Images().FindImage(ctx, "img1"); err == nil {
		t.Fatal("image metadata survived detach")
	}
	if _, err := store.Images().FindThumb(ctx, "th1"); err == nil {
		t.Fatal("thumb metadata survived detach")
	}
	u, _ := store.Users().FindByID(ctx, id)
	if u.Profile.ImageID != "" || u.Profile.ThumbID != "" {
		t.Fatalf("profile image fields not cleared: %+v", u.Profile)
	}

	// File removal is fire-and-forget, so poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(up.ImagePath("img1", "png")); os.IsNotExist(err) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if _, err := os.Stat(up.ImagePath("img1", "png")); !os.IsNotExist(err) {
		t.Fatal("image file not removed")
	}
}

func TestDeleteImageMissingFileDoesNotAbortCleanup(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	id, _ := svc.Insert(ctx, auth.Actor{}, validInsert(), nil)

	// Metadata exists but no files on disk, and the thumb record is absent
	// entirely. Cleanup must still clear everything it can reach.
	img := &image.File{ID: "img2", Ext: "jpg", OwnerID: id, UploadedAt: time.Now()}
	if err := store.Images().SaveImage(ctx, img); err != nil {
		t.Fatalf("save image: %v", err)
	}
	attachImage(t, store, id, "img2", "ghost-thumb")

	if err := svc.DeleteImage(ctx, auth.Actor{UserID: id, Roles: []string{user.RoleStandard}}); err != nil {
		t.Fatalf("deleteImage: %v", err)
	}
	u, _ := store.Users().FindByID(ctx, id)
	if u.Profile.ImageID != "" || u.Profile.ThumbID != "" {
		t.Fatalf("profile image fields not cleared: %+v", u.Profile)
	}
}

func TestDeleteImageWithoutImageIsNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	id, _ := svc.Insert(ctx, auth.Actor{}, validInsert(), nil)

	err := svc.DeleteImage(ctx, auth.Actor{UserID: id, Roles: []string{user.RoleStandard}})
	var nf *repositories.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

// attachImage sets the profile image references the way the upload pipeline
// would, through the repository's SetImage write path.
func attachImage(t *testing.T, store *memory.Store, userID, imageID, thumbID string) {
	t.Helper()
	if err := store.Users().SetImage(context.Background(), userID, imageID, thumbID); err != nil {
		t.Fatalf("attach image: %v", err)
	}
}
