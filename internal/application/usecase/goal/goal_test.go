package goal

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/domain/valueobject"
	"github.com/pocketledger/backend/internal/integration/adapters"
	"github.com/pocketledger/backend/internal/integration/persistence"
	"github.com/pocketledger/backend/internal/integration/persistence/persistencetest"
)

type fixture struct {
	t      *testing.T
	ctx    context.Context
	uow    adapter.UnitOfWork
	repos  adapter.Repositories
	userID uuid.UUID
	emails *recordingEmailService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := persistencetest.NewDB(t)
	return &fixture{
		t:      t,
		ctx:    context.Background(),
		uow:    persistence.NewUnitOfWork(db),
		repos:  persistence.NewRepositories(db),
		userID: uuid.New(),
		emails: &recordingEmailService{},
	}
}

func (f *fixture) wallet(name string, balance int64) *entity.Wallet {
	f.t.Helper()

	w := entity.NewWallet(f.userID, name, entity.WalletCategoryBank, balance)
	if err := f.repos.Wallets.Create(f.ctx, w); err != nil {
		f.t.Fatalf("failed to create wallet: %v", err)
	}
	return w
}

func (f *fixture) balance(walletID uuid.UUID) int64 {
	f.t.Helper()

	w, err := f.repos.Wallets.FindByID(f.ctx, walletID)
	if err != nil {
		f.t.Fatalf("failed to load wallet: %v", err)
	}
	return w.Balance
}

func (f *fixture) goal(id uuid.UUID) *entity.Goal {
	f.t.Helper()

	g, err := f.repos.Goals.FindByID(f.ctx, id)
	if err != nil {
		f.t.Fatalf("failed to load goal: %v", err)
	}
	return g
}

func (f *fixture) milestones(goalID uuid.UUID) []*entity.Milestone {
	f.t.Helper()

	ms, err := f.repos.Milestones.FindByGoalID(f.ctx, goalID)
	if err != nil {
		f.t.Fatalf("failed to load milestones: %v", err)
	}
	return ms
}

func (f *fixture) createGoal(target int64, pace valueobject.MilestonePace) *entity.GoalWithMilestones {
	f.t.Helper()

	out, err := NewCreateGoalUseCase(f.uow, adapters.NewEvenMilestoneSuggester()).Execute(f.ctx, CreateGoalInput{
		UserID:        f.userID,
		Name:          "Emergency fund",
		TargetAmount:  target,
		MilestonePace: pace,
	})
	if err != nil {
		f.t.Fatalf("failed to create goal: %v", err)
	}
	return out.Goal
}

func (f *fixture) add(goalID, walletID uuid.UUID, amount int64) (*AddAmountOutput, error) {
	return NewAddAmountUseCase(f.uow, f.emails).Execute(f.ctx, AddAmountInput{
		UserID:    f.userID,
		UserEmail: "saver@example.com",
		GoalID:    goalID,
		WalletID:  walletID,
		Amount:    amount,
	})
}

func (f *fixture) remove(goalID, walletID uuid.UUID, amount int64) (*RemoveAmountOutput, error) {
	return NewRemoveAmountUseCase(f.uow).Execute(f.ctx, RemoveAmountInput{
		UserID:   f.userID,
		GoalID:   goalID,
		WalletID: walletID,
		Amount:   amount,
	})
}

type recordingEmailService struct {
	mu         sync.Mutex
	completed  []adapter.QueueGoalCompletedInput
	milestones []adapter.QueueMilestoneReachedInput
}

func (s *recordingEmailService) QueueGoalCompletedEmail(_ context.Context, input adapter.QueueGoalCompletedInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = append(s.completed, input)
	return nil
}

func (s *recordingEmailService) QueueMilestoneReachedEmail(_ context.Context, input adapter.QueueMilestoneReachedInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.milestones = append(s.milestones, input)
	return nil
}

type stubSuggester struct {
	suggestions []adapter.MilestoneSuggestion
	err         error
}

func (s stubSuggester) SuggestMilestones(context.Context, adapter.MilestoneSuggestionRequest) ([]adapter.MilestoneSuggestion, error) {
	return s.suggestions, s.err
}

func errorCode(err error) string {
	var coded domainerror.CodedError
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return ""
}

func TestCreateGoal(t *testing.T) {
	t.Run("moderate pace creates four ordered milestones", func(t *testing.T) {
		f := newFixture(t)
		g := f.createGoal(2000000, valueobject.MilestonePaceModerate)

		if g.Goal.Status != entity.GoalStatusActive || g.Goal.CurrentAmount != 0 {
			t.Errorf("unexpected goal state: %+v", g.Goal)
		}

		ms := f.milestones(g.Goal.ID)
		want := []int64{476000, 950000, 1426000, 1900000}
		if len(ms) != len(want) {
			t.Fatalf("got %d milestones, want %d", len(ms), len(want))
		}
		for i, m := range ms {
			if m.Order != i+1 {
				t.Errorf("milestone %d order = %d", i, m.Order)
			}
			if m.TargetAmount != want[i] {
				t.Errorf("milestone %d target = %d, want %d", i, m.TargetAmount, want[i])
			}
			if m.IsCompleted {
				t.Errorf("milestone %d should not be completed", i)
			}
		}
	})

	t.Run("custom count overrides the pace and is clamped", func(t *testing.T) {
		f := newFixture(t)
		custom := 25
		out, err := NewCreateGoalUseCase(f.uow, adapters.NewEvenMilestoneSuggester()).Execute(f.ctx, CreateGoalInput{
			UserID:               f.userID,
			Name:                 "House",
			TargetAmount:         100000,
			MilestonePace:        valueobject.MilestonePaceRelaxed,
			CustomMilestoneCount: &custom,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Goal.Milestones) != valueobject.MaxMilestoneCount {
			t.Errorf("got %d milestones, want %d", len(out.Goal.Milestones), valueobject.MaxMilestoneCount)
		}
	})

	t.Run("milestone dates are spread up to the target date", func(t *testing.T) {
		f := newFixture(t)
		target := time.Now().UTC().AddDate(1, 0, 0)
		out, err := NewCreateGoalUseCase(f.uow, adapters.NewEvenMilestoneSuggester()).Execute(f.ctx, CreateGoalInput{
			UserID:        f.userID,
			Name:          "Car",
			TargetAmount:  100000,
			TargetDate:    &target,
			MilestonePace: valueobject.MilestonePaceAggressive,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ms := out.Goal.Milestones
		last := ms[len(ms)-1].TargetDate
		if last == nil || !valueobject.SameDay(*last, target) {
			t.Errorf("last milestone date = %v, want %v", last, target)
		}
		for i := 1; i < len(ms); i++ {
			if ms[i].TargetDate.Before(*ms[i-1].TargetDate) {
				t.Errorf("milestone dates not ascending at %d", i)
			}
		}
	})

	validation := []struct {
		name  string
		input CreateGoalInput
		code  domainerror.GoalErrorCode
	}{
		{name: "empty name", input: CreateGoalInput{Name: " ", TargetAmount: 100}, code: domainerror.ErrCodeInvalidGoalName},
		{name: "zero target", input: CreateGoalInput{Name: "A", TargetAmount: 0}, code: domainerror.ErrCodeInvalidTargetAmount},
		{name: "unknown pace", input: CreateGoalInput{Name: "A", TargetAmount: 100, MilestonePace: "sprint"}, code: domainerror.ErrCodeInvalidMilestonePace},
	}
	for _, tt := range validation {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.input.UserID = f.userID
			_, err := NewCreateGoalUseCase(f.uow, adapters.NewEvenMilestoneSuggester()).Execute(f.ctx, tt.input)
			if errorCode(err) != string(tt.code) {
				t.Errorf("got %v, want code %s", err, tt.code)
			}
		})
	}

	suggesterFailures := []struct {
		name      string
		suggester stubSuggester
	}{
		{name: "service error", suggester: stubSuggester{err: errors.New("upstream timeout")}},
		{name: "wrong count", suggester: stubSuggester{suggestions: []adapter.MilestoneSuggestion{{Name: "Only one", TargetPercentage: 50}}}},
		{name: "unnamed milestone", suggester: stubSuggester{suggestions: []adapter.MilestoneSuggestion{
			{Name: "A", TargetPercentage: 30}, {Name: "", TargetPercentage: 60}, {Name: "C", TargetPercentage: 90},
		}}},
	}
	for _, tt := range suggesterFailures {
		t.Run("suggester "+tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := NewCreateGoalUseCase(f.uow, tt.suggester).Execute(f.ctx, CreateGoalInput{
				UserID:        f.userID,
				Name:          "Trip",
				TargetAmount:  100000,
				MilestonePace: valueobject.MilestonePaceAggressive,
			})
			if errorCode(err) != string(domainerror.ErrCodeMilestoneGeneration) {
				t.Fatalf("got %v, want milestone generation error", err)
			}
			if domainerror.KindOf(err) != domainerror.KindExternalService {
				t.Errorf("kind = %s, want external_service", domainerror.KindOf(err))
			}

			goals, _ := f.repos.Goals.FindByUserID(f.ctx, f.userID)
			if len(goals) != 0 {
				t.Errorf("no goal should be stored, got %d", len(goals))
			}
		})
	}

	t.Run("suggestions are clamped and sorted", func(t *testing.T) {
		f := newFixture(t)
		out, err := NewCreateGoalUseCase(f.uow, stubSuggester{suggestions: []adapter.MilestoneSuggestion{
			{Name: "Last", TargetPercentage: 120},
			{Name: "First", TargetPercentage: 2},
			{Name: "Middle", TargetPercentage: 50},
		}}).Execute(f.ctx, CreateGoalInput{
			UserID:        f.userID,
			Name:          "Trip",
			TargetAmount:  1000,
			MilestonePace: valueobject.MilestonePaceAggressive,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []struct {
			name   string
			amount int64
		}{{"First", 100}, {"Middle", 500}, {"Last", 950}}
		for i, m := range out.Goal.Milestones {
			if m.Name != want[i].name || m.TargetAmount != want[i].amount {
				t.Errorf("milestone %d = %s/%d, want %s/%d", i, m.Name, m.TargetAmount, want[i].name, want[i].amount)
			}
		}
	})

	t.Run("small targets keep every milestone above zero", func(t *testing.T) {
		f := newFixture(t)
		out, err := NewCreateGoalUseCase(f.uow, stubSuggester{suggestions: []adapter.MilestoneSuggestion{
			{Name: "Start", TargetPercentage: 10},
			{Name: "Half", TargetPercentage: 50},
			{Name: "Almost", TargetPercentage: 95},
		}}).Execute(f.ctx, CreateGoalInput{
			UserID:        f.userID,
			Name:          "Coffee",
			TargetAmount:  4,
			MilestonePace: valueobject.MilestonePaceAggressive,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []int64{1, 2, 4}
		for i, m := range out.Goal.Milestones {
			if m.TargetAmount != want[i] {
				t.Errorf("milestone %d target = %d, want %d", i, m.TargetAmount, want[i])
			}
			if m.IsCompleted {
				t.Errorf("milestone %d completed on a fresh goal", i)
			}
		}
	})
}

func TestAddAmount(t *testing.T) {
	t.Run("end to end transfer", func(t *testing.T) {
		f := newFixture(t)
		w := f.wallet("Main", 1000000)
		g := f.createGoal(2000000, valueobject.MilestonePaceModerate)
		if len(g.Milestones) != 4 {
			t.Fatalf("got %d milestones, want 4", len(g.Milestones))
		}

		_, err := f.add(g.Goal.ID, w.ID, 1200000)
		if !errors.Is(err, domainerror.ErrInsufficientFunds) {
			t.Fatalf("got %v, want insufficient funds", err)
		}
		if errorCode(err) != string(domainerror.ErrCodeWalletInsufficientFunds) {
			t.Errorf("code = %s", errorCode(err))
		}
		var insufficient *domainerror.InsufficientFundsError
		if !errors.As(err, &insufficient) || insufficient.Available != 1000000 {
			t.Errorf("expected available 1000000, got %+v", insufficient)
		}
		if f.balance(w.ID) != 1000000 || f.goal(g.Goal.ID).CurrentAmount != 0 {
			t.Fatal("failed transfer must not change balances")
		}
		for _, m := range f.milestones(g.Goal.ID) {
			if m.IsCompleted {
				t.Fatal("failed transfer must not complete milestones")
			}
		}

		out, err := f.add(g.Goal.ID, w.ID, 600000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := f.balance(w.ID); got != 400000 {
			t.Errorf("wallet balance = %d, want 400000", got)
		}
		stored := f.goal(g.Goal.ID)
		if stored.CurrentAmount != 600000 || stored.Status != entity.GoalStatusActive {
			t.Errorf("goal = %d/%s, want 600000/active", stored.CurrentAmount, stored.Status)
		}
		if out.IsGoalCompleted {
			t.Error("goal should not be completed")
		}

		for _, m := range f.milestones(g.Goal.ID) {
			if m.IsCompleted != (m.TargetAmount <= 600000) {
				t.Errorf("milestone %d (target %d) completed = %v", m.Order, m.TargetAmount, m.IsCompleted)
			}
		}
		if len(out.NewlyCompletedMilestoneIDs) != 1 || out.NewlyCompletedMilestoneIDs[0] != g.Milestones[0].ID {
			t.Errorf("newly completed = %v, want first milestone", out.NewlyCompletedMilestoneIDs)
		}
		if len(f.emails.milestones) != 1 {
			t.Errorf("expected one milestone email, got %d", len(f.emails.milestones))
		}
	})

	t.Run("reaching the target completes the goal", func(t *testing.T) {
		f := newFixture(t)
		w := f.wallet("Main", 5000000)
		g := f.createGoal(2000000, valueobject.MilestonePaceAggressive)

		out, err := f.add(g.Goal.ID, w.ID, 2000000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.IsGoalCompleted || out.Goal.Goal.Status != entity.GoalStatusCompleted {
			t.Errorf("goal should be completed, got %s", out.Goal.Goal.Status)
		}
		if len(out.NewlyCompletedMilestoneIDs) != 3 {
			t.Errorf("newly completed = %d, want 3", len(out.NewlyCompletedMilestoneIDs))
		}
		if len(f.emails.completed) != 1 || f.emails.completed[0].UserEmail != "saver@example.com" {
			t.Errorf("expected one goal completed email, got %+v", f.emails.completed)
		}

		// Adding more to a completed goal is not a new completion.
		out, err = f.add(g.Goal.ID, w.ID, 1000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.IsGoalCompleted {
			t.Error("goal was already completed")
		}
	})

	t.Run("milestones never reopen under pure accumulation", func(t *testing.T) {
		f := newFixture(t)
		w := f.wallet("Main", 5000000)
		g := f.createGoal(1000000, valueobject.MilestonePaceRelaxed)

		completed := map[uuid.UUID]bool{}
		for i := 0; i < 8; i++ {
			if _, err := f.add(g.Goal.ID, w.ID, 150000); err != nil {
				t.Fatalf("add %d: %v", i, err)
			}
			for _, m := range f.milestones(g.Goal.ID) {
				if completed[m.ID] && !m.IsCompleted {
					t.Fatalf("milestone %d reopened after add %d", m.Order, i)
				}
				if m.IsCompleted {
					completed[m.ID] = true
				}
			}
		}
	})

	t.Run("validation and ownership", func(t *testing.T) {
		f := newFixture(t)
		w := f.wallet("Main", 1000)
		g := f.createGoal(5000, valueobject.MilestonePaceAggressive)

		tests := []struct {
			name     string
			goalID   uuid.UUID
			walletID uuid.UUID
			amount   int64
			code     domainerror.GoalErrorCode
		}{
			{name: "zero amount", goalID: g.Goal.ID, walletID: w.ID, amount: 0, code: domainerror.ErrCodeInvalidTransferAmount},
			{name: "unknown goal", goalID: uuid.New(), walletID: w.ID, amount: 10, code: domainerror.ErrCodeGoalNotFound},
			{name: "unknown wallet", goalID: g.Goal.ID, walletID: uuid.New(), amount: 10, code: domainerror.ErrCodeGoalWalletNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.add(tt.goalID, tt.walletID, tt.amount)
				if errorCode(err) != string(tt.code) {
					t.Errorf("got %v, want %s", err, tt.code)
				}
			})
		}

		t.Run("another user's goal", func(t *testing.T) {
			_, err := NewAddAmountUseCase(f.uow, nil).Execute(f.ctx, AddAmountInput{
				UserID:   uuid.New(),
				GoalID:   g.Goal.ID,
				WalletID: w.ID,
				Amount:   10,
			})
			if domainerror.KindOf(err) != domainerror.KindNotFound {
				t.Errorf("got %v, want not found", err)
			}
		})
	})
}

func TestRemoveAmount(t *testing.T) {
	t.Run("withdrawal reopens milestones and reverts status", func(t *testing.T) {
		f := newFixture(t)
		w := f.wallet("Main", 3000000)
		g := f.createGoal(2000000, valueobject.MilestonePaceModerate)

		if _, err := f.add(g.Goal.ID, w.ID, 2000000); err != nil {
			t.Fatalf("add: %v", err)
		}

		out, err := f.remove(g.Goal.ID, w.ID, 1500000)
		if err != nil {
			t.Fatalf("remove: %v", err)
		}
		if out.Goal.Goal.Status != entity.GoalStatusActive || out.Goal.Goal.CurrentAmount != 500000 {
			t.Errorf("goal = %d/%s, want 500000/active", out.Goal.Goal.CurrentAmount, out.Goal.Goal.Status)
		}
		if got := f.balance(w.ID); got != 2500000 {
			t.Errorf("wallet balance = %d, want 2500000", got)
		}
		for _, m := range f.milestones(g.Goal.ID) {
			if m.IsCompleted != (m.TargetAmount <= 500000) {
				t.Errorf("milestone %d (target %d) completed = %v", m.Order, m.TargetAmount, m.IsCompleted)
			}
			if !m.IsCompleted && m.CompletedAt != nil {
				t.Errorf("milestone %d kept its completion time", m.Order)
			}
		}
	})

	t.Run("more than saved is rejected", func(t *testing.T) {
		f := newFixture(t)
		w := f.wallet("Main", 1000)
		g := f.createGoal(5000, valueobject.MilestonePaceAggressive)
		if _, err := f.add(g.Goal.ID, w.ID, 400); err != nil {
			t.Fatalf("add: %v", err)
		}

		_, err := f.remove(g.Goal.ID, w.ID, 401)
		if errorCode(err) != string(domainerror.ErrCodeGoalInsufficientFunds) {
			t.Fatalf("got %v, want goal insufficient funds", err)
		}
		var insufficient *domainerror.InsufficientFundsError
		if !errors.As(err, &insufficient) || insufficient.Available != 400 {
			t.Errorf("expected available 400, got %+v", insufficient)
		}
		if f.balance(w.ID) != 600 || f.goal(g.Goal.ID).CurrentAmount != 400 {
			t.Error("rejected withdrawal must not change balances")
		}
	})

	t.Run("cancelled goal stays cancelled", func(t *testing.T) {
		f := newFixture(t)
		w := f.wallet("Main", 10000)
		g := f.createGoal(5000, valueobject.MilestonePaceAggressive)
		if _, err := f.add(g.Goal.ID, w.ID, 3000); err != nil {
			t.Fatalf("add: %v", err)
		}

		cancelled := entity.GoalStatusCancelled
		if _, err := NewUpdateGoalUseCase(f.repos.Goals).Execute(f.ctx, UpdateGoalInput{
			GoalID: g.Goal.ID, UserID: f.userID, Status: &cancelled,
		}); err != nil {
			t.Fatalf("cancel: %v", err)
		}

		if _, err := f.remove(g.Goal.ID, w.ID, 1000); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if got := f.goal(g.Goal.ID).Status; got != entity.GoalStatusCancelled {
			t.Errorf("status = %s, want cancelled", got)
		}
	})
}

func TestGoalTransferConservation(t *testing.T) {
	f := newFixture(t)
	w1 := f.wallet("Main", 1000000)
	w2 := f.wallet("Savings", 500000)
	g := f.createGoal(3000000, valueobject.MilestonePaceModerate)

	steps := []struct {
		add    bool
		wallet uuid.UUID
		amount int64
	}{
		{true, w1.ID, 300000},
		{true, w2.ID, 200000},
		{false, w1.ID, 100000},
		{true, w1.ID, 50000},
		{false, w2.ID, 250000},
		{true, w2.ID, 10000},
	}
	for i, s := range steps {
		var err error
		if s.add {
			_, err = f.add(g.Goal.ID, s.wallet, s.amount)
		} else {
			_, err = f.remove(g.Goal.ID, s.wallet, s.amount)
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	sum, err := f.repos.GoalTransactions.SumByGoalID(f.ctx, g.Goal.ID)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	current := f.goal(g.Goal.ID).CurrentAmount
	if current != sum {
		t.Errorf("current amount %d != ledger sum %d", current, sum)
	}

	walletDelta := (f.balance(w1.ID) - 1000000) + (f.balance(w2.ID) - 500000)
	if walletDelta != -sum {
		t.Errorf("wallet delta %d != -%d", walletDelta, sum)
	}
}

func TestDeleteGoal(t *testing.T) {
	t.Run("returns positive net allocations only", func(t *testing.T) {
		f := newFixture(t)
		w1 := f.wallet("W1", 0)
		w2 := f.wallet("W2", 0)
		g := f.createGoal(10000, valueobject.MilestonePaceAggressive)

		entries := []struct {
			wallet uuid.UUID
			amount int64
		}{
			{w1.ID, 500}, {w1.ID, 300}, {w2.ID, -200}, {w2.ID, 100},
		}
		var total int64
		for _, e := range entries {
			entry := entity.NewGoalTransaction(g.Goal.ID, f.userID, e.wallet, e.amount, "seed")
			if err := f.repos.GoalTransactions.Create(f.ctx, entry); err != nil {
				t.Fatalf("seed: %v", err)
			}
			total += e.amount
		}
		if err := f.repos.Goals.AdjustCurrentAmount(f.ctx, g.Goal.ID, f.userID, total); err != nil {
			t.Fatalf("seed goal: %v", err)
		}

		out, err := NewDeleteGoalUseCase(f.uow).Execute(f.ctx, DeleteGoalInput{GoalID: g.Goal.ID, UserID: f.userID})
		if err != nil {
			t.Fatalf("delete: %v", err)
		}

		if len(out.ReturnedAmounts) != 1 || out.ReturnedAmounts[w1.ID] != 800 {
			t.Errorf("returned = %v, want only W1: 800", out.ReturnedAmounts)
		}
		if f.balance(w1.ID) != 800 || f.balance(w2.ID) != 0 {
			t.Errorf("balances W1=%d W2=%d, want 800 and 0", f.balance(w1.ID), f.balance(w2.ID))
		}

		if _, err := f.repos.Goals.FindByID(f.ctx, g.Goal.ID); !errors.Is(err, domainerror.ErrGoalNotFound) {
			t.Errorf("goal should be gone, got %v", err)
		}
		if ms := f.milestones(g.Goal.ID); len(ms) != 0 {
			t.Errorf("milestones should be gone, got %d", len(ms))
		}
	})

	t.Run("another user's goal is not found", func(t *testing.T) {
		f := newFixture(t)
		g := f.createGoal(10000, valueobject.MilestonePaceAggressive)

		_, err := NewDeleteGoalUseCase(f.uow).Execute(f.ctx, DeleteGoalInput{GoalID: g.Goal.ID, UserID: uuid.New()})
		if errorCode(err) != string(domainerror.ErrCodeGoalNotFound) {
			t.Errorf("got %v, want goal not found", err)
		}
	})
}

func TestRegenerateMilestones(t *testing.T) {
	f := newFixture(t)
	w := f.wallet("Main", 5000000)
	g := f.createGoal(2000000, valueobject.MilestonePaceModerate)
	if _, err := f.add(g.Goal.ID, w.ID, 1000000); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := NewRegenerateMilestonesUseCase(f.repos.Goals, f.uow, adapters.NewEvenMilestoneSuggester()).Execute(f.ctx, RegenerateMilestonesInput{
		UserID:        f.userID,
		GoalID:        g.Goal.ID,
		MilestonePace: valueobject.MilestonePaceAggressive,
	})
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}

	stored := f.milestones(g.Goal.ID)
	if len(stored) != 3 || len(out.Goal.Milestones) != 3 {
		t.Fatalf("got %d stored milestones, want 3", len(stored))
	}
	for _, m := range stored {
		for _, old := range g.Milestones {
			if m.ID == old.ID {
				t.Errorf("old milestone %s survived", old.ID)
			}
		}
		reached := m.TargetAmount <= 1000000
		if m.IsCompleted != reached {
			t.Errorf("milestone %d (target %d) completed = %v", m.Order, m.TargetAmount, m.IsCompleted)
		}
		if reached && m.CompletedAt == nil {
			t.Errorf("milestone %d has no completion time", m.Order)
		}
	}
}

func TestUpdateGoal(t *testing.T) {
	f := newFixture(t)
	g := f.createGoal(10000, valueobject.MilestonePaceAggressive)
	uc := NewUpdateGoalUseCase(f.repos.Goals)

	name := "Renamed"
	target := int64(20000)
	out, err := uc.Execute(f.ctx, UpdateGoalInput{GoalID: g.Goal.ID, UserID: f.userID, Name: &name, TargetAmount: &target})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Goal.Name != name || f.goal(g.Goal.ID).TargetAmount != target {
		t.Errorf("update not persisted: %+v", out.Goal)
	}

	tests := []struct {
		name  string
		input UpdateGoalInput
		code  domainerror.GoalErrorCode
	}{
		{name: "nothing to update", input: UpdateGoalInput{}, code: domainerror.ErrCodeMissingGoalFields},
		{name: "bad status", input: UpdateGoalInput{Status: ptr(entity.GoalStatus("paused"))}, code: domainerror.ErrCodeInvalidGoalStatus},
		{name: "bad target", input: UpdateGoalInput{TargetAmount: ptr(int64(-5))}, code: domainerror.ErrCodeInvalidTargetAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.GoalID = g.Goal.ID
			tt.input.UserID = f.userID
			_, err := uc.Execute(f.ctx, tt.input)
			if errorCode(err) != string(tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestUpdateMilestone(t *testing.T) {
	f := newFixture(t)
	g := f.createGoal(10000, valueobject.MilestonePaceAggressive)
	other := f.createGoal(10000, valueobject.MilestonePaceAggressive)
	uc := NewUpdateMilestoneUseCase(f.repos.Goals, f.repos.Milestones)

	name := "First stop"
	advice := "Skip one takeaway a week"
	out, err := uc.Execute(f.ctx, UpdateMilestoneInput{
		UserID: f.userID, GoalID: g.Goal.ID, MilestoneID: g.Milestones[0].ID, Name: &name, Advice: &advice,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Milestone.Name != name || out.Milestone.Advice != advice {
		t.Errorf("unexpected milestone: %+v", out.Milestone)
	}
	if out.Milestone.TargetAmount != g.Milestones[0].TargetAmount {
		t.Error("target amount must not change")
	}

	_, err = uc.Execute(f.ctx, UpdateMilestoneInput{
		UserID: f.userID, GoalID: g.Goal.ID, MilestoneID: other.Milestones[0].ID, Name: &name,
	})
	if errorCode(err) != string(domainerror.ErrCodeMilestoneNotFound) {
		t.Errorf("milestone of another goal: got %v", err)
	}
}

func TestGetTransactionHistory(t *testing.T) {
	f := newFixture(t)
	w := f.wallet("Main", 100000)
	g := f.createGoal(500000, valueobject.MilestonePaceAggressive)

	for _, step := range []int64{10000, 25000, -5000} {
		var err error
		if step > 0 {
			_, err = f.add(g.Goal.ID, w.ID, step)
		} else {
			_, err = f.remove(g.Goal.ID, w.ID, -step)
		}
		if err != nil {
			t.Fatalf("transfer %d: %v", step, err)
		}
	}

	uc := NewGetTransactionHistoryUseCase(f.repos.Goals, f.repos.GoalTransactions)

	t.Run("running balance", func(t *testing.T) {
		out, err := uc.Execute(f.ctx, GetTransactionHistoryInput{UserID: f.userID, GoalID: g.Goal.ID})
		if err != nil {
			t.Fatalf("history: %v", err)
		}

		wantDelta := []int64{10000, 25000, -5000}
		wantCumulative := []int64{10000, 35000, 30000}
		if len(out.Entries) != len(wantDelta) {
			t.Fatalf("got %d entries, want %d", len(out.Entries), len(wantDelta))
		}
		for i, e := range out.Entries {
			if e.TransactionAmount != wantDelta[i] || e.CumulativeAmount != wantCumulative[i] {
				t.Errorf("entry %d = %d/%d, want %d/%d", i, e.TransactionAmount, e.CumulativeAmount, wantDelta[i], wantCumulative[i])
			}
			if e.Wallet == nil || e.Wallet.Name != "Main" {
				t.Errorf("entry %d wallet = %+v", i, e.Wallet)
			}
		}
	})

	t.Run("start date after every entry opens at the total", func(t *testing.T) {
		start := time.Now().UTC().Add(time.Hour)
		out, err := uc.Execute(f.ctx, GetTransactionHistoryInput{UserID: f.userID, GoalID: g.Goal.ID, StartDate: &start})
		if err != nil {
			t.Fatalf("history: %v", err)
		}
		if out.OpeningAmount != 30000 || len(out.Entries) != 0 {
			t.Errorf("opening = %d entries = %d, want 30000 and 0", out.OpeningAmount, len(out.Entries))
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		start := time.Now().UTC()
		end := start.Add(-time.Hour)
		_, err := uc.Execute(f.ctx, GetTransactionHistoryInput{UserID: f.userID, GoalID: g.Goal.ID, StartDate: &start, EndDate: &end})
		if errorCode(err) != string(domainerror.ErrCodeInvalidDateRange) {
			t.Errorf("got %v, want invalid date range", err)
		}
	})
}

func TestListAndGetGoals(t *testing.T) {
	f := newFixture(t)
	f.createGoal(10000, valueobject.MilestonePaceAggressive)
	g := f.createGoal(20000, valueobject.MilestonePaceRelaxed)

	list, err := NewListGoalsUseCase(f.repos.Goals, f.repos.Milestones).Execute(f.ctx, ListGoalsInput{UserID: f.userID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Goals) != 2 {
		t.Fatalf("got %d goals, want 2", len(list.Goals))
	}
	for _, item := range list.Goals {
		if len(item.Milestones) == 0 {
			t.Errorf("goal %s listed without milestones", item.Goal.ID)
		}
	}

	got, err := NewGetGoalUseCase(f.repos.Goals, f.repos.Milestones).Execute(f.ctx, GetGoalInput{UserID: f.userID, GoalID: g.Goal.ID})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Goal.Milestones) != 5 {
		t.Errorf("got %d milestones, want 5", len(got.Goal.Milestones))
	}

	empty, err := NewListGoalsUseCase(f.repos.Goals, f.repos.Milestones).Execute(f.ctx, ListGoalsInput{UserID: uuid.New()})
	if err != nil || len(empty.Goals) != 0 {
		t.Errorf("other user should see no goals, got %v %v", empty, err)
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "short name untouched", input: "Deposit", want: "Deposit"},
		{name: "ascii cut at limit", input: strings.Repeat("a", 120), want: strings.Repeat("a", MaxNameLength)},
		{name: "multibyte rune on the limit is dropped", input: strings.Repeat("a", 99) + "é", want: strings.Repeat("a", 99)},
		{name: "multibyte runes throughout", input: strings.Repeat("日", 40), want: strings.Repeat("日", 33)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateName(tt.input, MaxNameLength)
			if got != tt.want {
				t.Errorf("truncateName() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncateName() returned invalid UTF-8: %q", got)
			}
		})
	}
}
