package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/intellious/hrms/internal/clock"
	"github.com/intellious/hrms/internal/document/domain"
	"github.com/intellious/hrms/internal/document/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// recordingStorage captures every call so tests can assert ordering
// guarantees like "validation before storage".
type recordingStorage struct {
	saved   []string
	signed  []string
	deleted []string
}

func (r *recordingStorage) Save(_ context.Context, key string, reader io.Reader, _ string) error {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return err
	}
	r.saved = append(r.saved, key)
	return nil
}

func (r *recordingStorage) GetSignedURL(_ context.Context, key string, expiry time.Duration) (string, error) {
	r.signed = append(r.signed, key)
	return fmt.Sprintf("https://files.test/%s?ttl=%d", key, int(expiry.Seconds())), nil
}

func (r *recordingStorage) Delete(_ context.Context, key string) error {
	r.deleted = append(r.deleted, key)
	return nil
}

func (r *recordingStorage) Exists(_ context.Context, key string) (bool, error) {
	for _, saved := range r.saved {
		if saved == key {
			return true, nil
		}
	}
	return false, nil
}

var testCounter int

func newTestService(t *testing.T) (*Service, *recordingStorage, *clock.FakeClock) {
	t.Helper()

	testCounter++
	dsn := fmt.Sprintf("file:document_svc_%d?mode=memory&cache=shared", testCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Document{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	store := &recordingStorage{}
	fake := clock.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	return &Service{
		db:      db,
		log:     zaptest.NewLogger(t),
		genID:   node,
		clock:   fake,
		repo:    repository.Provide(),
		storage: store,
	}, store, fake
}

func upload(t *testing.T, svc *Service, employeeID snowflake.ID, docType, fileName string) *domain.Document {
	t.Helper()
	doc, err := svc.Upload(context.Background(), domain.UploadRequest{
		EmployeeID:  employeeID,
		Type:        docType,
		FileName:    fileName,
		ContentType: "application/pdf",
		Reader:      strings.NewReader("content"),
	})
	require.NoError(t, err)
	return doc
}

func TestUploadRejectsUnknownTypeBeforeStorage(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), domain.UploadRequest{
		EmployeeID: svc.genID.Generate(),
		Type:       "UNKNOWN_TYPE",
		FileName:   "x.pdf",
		Reader:     strings.NewReader("content"),
	})
	assert.ErrorIs(t, err, domain.ErrUnknownType)
	assert.Empty(t, store.saved)
}

func TestUploadRequiresFile(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), domain.UploadRequest{
		EmployeeID: svc.genID.Generate(),
		Type:       string(domain.TypeAadhaar),
		FileName:   "id.png",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyFile)
	assert.Empty(t, store.saved)
}

func TestUploadStoresUnderEmployeeScopedKey(t *testing.T) {
	svc, store, _ := newTestService(t)

	employeeID := svc.genID.Generate()
	doc := upload(t, svc, employeeID, "aadhaar", "Passport Scan.PDF")

	assert.Equal(t, domain.TypeAadhaar, doc.DocumentType)
	assert.Equal(t, domain.StatusPending, doc.Status)
	assert.Equal(t, "Passport Scan.PDF", doc.OriginalFileName)

	require.Len(t, store.saved, 1)
	key := store.saved[0]
	assert.True(t, strings.HasPrefix(key, "documents/"+employeeID.String()+"/"), key)
	assert.True(t, strings.HasSuffix(key, ".pdf"), key)
}

func TestListForEmployeeIsScoped(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	mine := svc.genID.Generate()
	theirs := svc.genID.Generate()
	upload(t, svc, mine, string(domain.TypeAadhaar), "id.pdf")
	upload(t, svc, theirs, string(domain.TypeOther), "misc.pdf")

	docs, err := svc.ListForEmployee(ctx, mine)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, mine, docs[0].EmployeeID)
}

func TestGetDownloadURLReturnsLatestUpload(t *testing.T) {
	svc, store, fake := newTestService(t)
	ctx := context.Background()

	employeeID := svc.genID.Generate()
	upload(t, svc, employeeID, string(domain.TypeAadhaar), "old.pdf")
	fake.Advance(time.Hour)
	upload(t, svc, employeeID, string(domain.TypeAadhaar), "new.pdf")

	signed, err := svc.GetDownloadURL(ctx, domain.DownloadURLRequest{
		EmployeeID: employeeID,
		Type:       string(domain.TypeAadhaar),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeAadhaar, signed.DocumentType)
	assert.Equal(t, 300, signed.ExpiresIn)

	require.Len(t, store.signed, 1)
	assert.Equal(t, store.saved[1], store.signed[0])
}

func TestGetDownloadURLUnknownType(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetDownloadURL(context.Background(), domain.DownloadURLRequest{
		EmployeeID: svc.genID.Generate(),
		Type:       "SELFIES",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownType)
}

func TestGetDownloadURLNoDocument(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetDownloadURL(context.Background(), domain.DownloadURLRequest{
		EmployeeID: svc.genID.Generate(),
		Type:       string(domain.TypeAadhaar),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetStatusApprove(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	doc := upload(t, svc, svc.genID.Generate(), string(domain.TypeAadhaar), "id.pdf")
	reviewer := svc.genID.Generate()

	updated, err := svc.SetStatus(ctx, domain.SetStatusRequest{
		DocumentID: doc.ID,
		Status:     "approved",
		ReviewerID: reviewer,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, updated.Status)
	require.NotNil(t, updated.ApprovedBy)
	assert.Equal(t, reviewer, *updated.ApprovedBy)
	require.NotNil(t, updated.ApprovedAt)
}

func TestSetStatusRejectsInvalidValue(t *testing.T) {
	svc, _, _ := newTestService(t)

	doc := upload(t, svc, svc.genID.Generate(), string(domain.TypeAadhaar), "id.pdf")

	// PENDING is the initial state, not a reviewer decision.
	_, err := svc.SetStatus(context.Background(), domain.SetStatusRequest{
		DocumentID: doc.ID,
		Status:     "PENDING",
		ReviewerID: svc.genID.Generate(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestSetStatusAbsentDocument(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SetStatus(context.Background(), domain.SetStatusRequest{
		DocumentID: snowflake.ID(404),
		Status:     "REJECTED",
		ReviewerID: svc.genID.Generate(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
