package service

import (
	"context"
	"testing"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MemoServiceSuite struct {
	suite.Suite
	repo     *MockMemoTemplateRepository
	notifier *recordingNotifier
	svc      MemoTemplateService
}

func (s *MemoServiceSuite) SetupTest() {
	s.repo = new(MockMemoTemplateRepository)
	s.notifier = &recordingNotifier{}
	s.svc = NewMemoTemplateService(s.repo, stubAudit{}, s.notifier)
}

func TestMemoServiceSuite(t *testing.T) {
	suite.Run(t, new(MemoServiceSuite))
}

func (s *MemoServiceSuite) TestCreateBroadcastsChange() {
	s.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.MemoTemplate")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.MemoTemplate).ID = uuid.New()
		}).
		Return(nil)

	resp, err := s.svc.Create(context.Background(), CreateMemoTemplateRequest{
		Name:    "Net 15",
		Content: "Payment is due within 15 days.",
	}, "user-1")

	s.Require().NoError(err)
	s.Equal("Net 15", resp.Name)
	s.Contains(s.notifier.Events(), EventMemoTemplateChanged)
}

func (s *MemoServiceSuite) TestListReturnsRepositoryOrder() {
	// The repository sorts by name; the service must not reorder.
	s.repo.On("ListByName", mock.Anything).Return([]model.MemoTemplate{
		{ID: uuid.New(), Name: "Late fees"},
		{ID: uuid.New(), Name: "Net 15"},
		{ID: uuid.New(), Name: "Thank you"},
	}, nil)

	memos, err := s.svc.List(context.Background())

	s.Require().NoError(err)
	s.Require().Len(memos, 3)
	s.Equal("Late fees", memos[0].Name)
	s.Equal("Net 15", memos[1].Name)
	s.Equal("Thank you", memos[2].Name)
}

func (s *MemoServiceSuite) TestGetContentReturnsBodyOnly() {
	id := uuid.New()
	s.repo.On("FindByID", mock.Anything, id).Return(&model.MemoTemplate{
		ID:      id,
		Name:    "Net 15",
		Content: "Payment is due within 15 days.",
	}, nil)

	content, err := s.svc.GetContent(context.Background(), id.String())

	s.Require().NoError(err)
	s.Equal("Payment is due within 15 days.", content)
}

func (s *MemoServiceSuite) TestGetContentUnknownID() {
	id := uuid.New()
	s.repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := s.svc.GetContent(context.Background(), id.String())

	s.Require().Error(err)
	s.Contains(err.Error(), "not found")
}

func (s *MemoServiceSuite) TestUpdateDoesNotTouchDrafts() {
	id := uuid.New()
	s.repo.On("FindByID", mock.Anything, id).Return(&model.MemoTemplate{ID: id, Name: "Old", Content: "old text"}, nil)
	s.repo.On("Update", mock.Anything, mock.AnythingOfType("*model.MemoTemplate")).Return(nil)

	resp, err := s.svc.Update(context.Background(), id.String(), UpdateMemoTemplateRequest{
		Name:    "New",
		Content: "new text",
	}, "user-1")

	s.Require().NoError(err)
	s.Equal("New", resp.Name)
	s.Equal("new text", resp.Content)
	s.Contains(s.notifier.Events(), EventMemoTemplateChanged)
}

func (s *MemoServiceSuite) TestDeleteBroadcastsChange() {
	id := uuid.New()
	s.repo.On("FindByID", mock.Anything, id).Return(&model.MemoTemplate{ID: id, Name: "Net 15"}, nil)
	s.repo.On("Delete", mock.Anything, id).Return(nil)

	err := s.svc.Delete(context.Background(), id.String(), "user-1")

	s.Require().NoError(err)
	s.Contains(s.notifier.Events(), EventMemoTemplateChanged)
}
