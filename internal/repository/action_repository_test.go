package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"global-terrorism-dashboard/internal/model"
	"global-terrorism-dashboard/internal/testdata/mockclickhousebatch"
	"global-terrorism-dashboard/internal/testdata/mockclickhouseconnection"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ActionRepositoryTestSuite struct {
	suite.Suite

	repository *actionRepository
	connMock   *mockclickhouseconnection.Connection
	batchMock  *mockclickhousebatch.Batch
}

func TestActionRepository(t *testing.T) {
	suite.Run(t, new(ActionRepositoryTestSuite))
}

func (s *ActionRepositoryTestSuite) SetupTest() {
	s.connMock = &mockclickhouseconnection.Connection{}
	s.batchMock = &mockclickhousebatch.Batch{}
	s.repository = &actionRepository{conn: s.connMock}
}

func (s *ActionRepositoryTestSuite) TearDownTest() {
	s.connMock.AssertExpectations(s.T())
	s.batchMock.AssertExpectations(s.T())
}

func (s *ActionRepositoryTestSuite) entries() []model.JournalEntry {
	ts := time.Date(2021, 3, 1, 10, 0, 0, 0, time.UTC)
	return []model.JournalEntry{
		{
			ID:           uuid.MustParse("6f1c1c3e-94e4-4a8c-9f6b-1a7a0f3b2c11"),
			Action:       "[Event] Delete Event",
			EventIDs:     []int64{6},
			DispatchedAt: ts,
		},
		{
			ID:           uuid.MustParse("0b54e0a4-5d1e-4c0f-8fb4-2b2d7f9a9e42"),
			Action:       "[Event] Http Error",
			Errors:       []string{"Event not found"},
			DispatchedAt: ts.Add(time.Second),
		},
	}
}

func (s *ActionRepositoryTestSuite) TestCreateBatch_Success() {
	ctx := context.Background()
	entries := s.entries()

	s.connMock.On("PrepareBatch", mock.Anything, insertActionsQuery).Return(s.batchMock, nil).Once()
	s.batchMock.On("Append",
		entries[0].ID, entries[0].Action, []int64{6}, []string{}, entries[0].DispatchedAt,
	).Return(nil).Once()
	s.batchMock.On("Append",
		entries[1].ID, entries[1].Action, []int64{}, []string{"Event not found"}, entries[1].DispatchedAt,
	).Return(nil).Once()
	s.batchMock.On("Send").Return(nil).Once()

	err := s.repository.CreateBatch(ctx, entries)
	s.NoError(err)
}

func (s *ActionRepositoryTestSuite) TestCreateBatch_Empty() {
	err := s.repository.CreateBatch(context.Background(), nil)
	s.NoError(err)
	s.connMock.AssertNotCalled(s.T(), "PrepareBatch", mock.Anything, mock.Anything)
}

func (s *ActionRepositoryTestSuite) TestCreateBatch_PrepareError() {
	s.connMock.On("PrepareBatch", mock.Anything, insertActionsQuery).Return(nil, errors.New("connection lost")).Once()

	err := s.repository.CreateBatch(context.Background(), s.entries())

	s.ErrorContains(err, "prepare batch")
}

func (s *ActionRepositoryTestSuite) TestCreateBatch_AppendErrorAborts() {
	s.connMock.On("PrepareBatch", mock.Anything, insertActionsQuery).Return(s.batchMock, nil).Once()
	s.batchMock.On("Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("bad column")).Once()
	s.batchMock.On("Abort").Return(nil).Once()

	err := s.repository.CreateBatch(context.Background(), s.entries())

	s.ErrorContains(err, "append journal entry")
	s.batchMock.AssertNotCalled(s.T(), "Send")
}

func (s *ActionRepositoryTestSuite) TestCreateBatch_SendError() {
	s.connMock.On("PrepareBatch", mock.Anything, insertActionsQuery).Return(s.batchMock, nil).Once()
	s.batchMock.On("Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Twice()
	s.batchMock.On("Send").Return(errors.New("timeout")).Once()

	err := s.repository.CreateBatch(context.Background(), s.entries())

	s.ErrorContains(err, "send batch")
}

func (s *ActionRepositoryTestSuite) TestCountByAction() {
	s.connMock.On("Select", mock.Anything, mock.Anything, countByActionQuery).
		Run(func(args mock.Arguments) {
			dest := args.Get(1).(*[]actionCount)
			*dest = []actionCount{
				{Action: "[Event] Add Event", Total: 3},
				{Action: "[Event] Http Error", Total: 1},
			}
		}).Return(nil).Once()

	counts, err := s.repository.CountByAction(context.Background())

	s.Require().NoError(err)
	s.Equal(map[string]uint64{"[Event] Add Event": 3, "[Event] Http Error": 1}, counts)
}

func (s *ActionRepositoryTestSuite) TestCountByAction_Error() {
	s.connMock.On("Select", mock.Anything, mock.Anything, countByActionQuery).
		Return(errors.New("table missing")).Once()

	_, err := s.repository.CountByAction(context.Background())

	s.ErrorContains(err, "count actions")
}
