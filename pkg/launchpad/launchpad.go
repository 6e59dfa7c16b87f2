// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package launchpad manages token launches: project registration with a
// platform fee, founder allocations, and linear vesting between a cliff
// and an end time.
package launchpad

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/mertksk/casper-ignite/pkg/ledger"
	"github.com/mertksk/casper-ignite/pkg/log"
	"github.com/mertksk/casper-ignite/pkg/metric"
	"github.com/mertksk/casper-ignite/pkg/store"
	"github.com/mertksk/casper-ignite/pkg/types"
)

// Revert codes of the launchpad.
var (
	ErrNotAuthorized        = types.NewError(1, "launchpad: not authorized")
	ErrProjectNotFound      = types.NewError(2, "launchpad: project not found")
	ErrProjectAlreadyExists = types.NewError(3, "launchpad: project already exists")
	ErrInvalidAmount        = types.NewError(4, "launchpad: invalid amount")
	ErrTransferFailed       = types.NewError(5, "launchpad: transfer failed")
	ErrVestingNotReady      = types.NewError(6, "launchpad: vesting cliff not reached")
	ErrAlreadyClaimed       = types.NewError(7, "launchpad: nothing left to claim")
	ErrMathOverflow         = types.NewError(8, "launchpad: math overflow")
	ErrMissingKey           = types.NewError(9, "launchpad: missing key")
	ErrInsufficientPayment  = types.NewError(10, "launchpad: insufficient payment")
	ErrAlreadyLaunched      = types.NewError(11, "launchpad: already launched")
)

// Storage keys.
const (
	keyProjectCounter = "project_counter"
	keyPlatformFee    = "platform_fee"
	keyTotalFees      = "total_fees"
	dictProjects      = "projects"
	dictVesting       = "vesting"
)

// Vesting schedule: 12-month cliff, fully vested after 24 months.
const (
	DefaultCliff   types.Timestamp = 365 * 24 * 60 * 60 * 1000
	DefaultVesting types.Timestamp = 2 * 365 * 24 * 60 * 60 * 1000
)

// DefaultPlatformFee is 20 CSPR in motes.
var DefaultPlatformFee = types.CSPRAmount(20)

// ProjectStatus of a registered project.
type ProjectStatus uint8

const (
	StatusPending   ProjectStatus = 0
	StatusLaunched  ProjectStatus = 1
	StatusCancelled ProjectStatus = 2
)

// Project is a registered token launch.
type Project struct {
	Founder    types.AccountID `json:"founder"`
	Name       string          `json:"name"`
	Symbol     string          `json:"symbol"`
	Supply     types.Amount    `json:"supply"`
	Status     ProjectStatus   `json:"status"`
	LaunchTime types.Timestamp `json:"launch_time"`
}

// VestingRecord tracks the founder allocation of a launched project.
// Claimed never decreases and never exceeds Total.
type VestingRecord struct {
	Founder   types.AccountID `json:"founder"`
	Total     types.Amount    `json:"total"`
	Claimed   types.Amount    `json:"claimed"`
	CliffTime types.Timestamp `json:"cliff_time"`
	EndTime   types.Timestamp `json:"end_time"`
}

// Launchpad is the launch controller. Collected fees accumulate in a
// dedicated purse until the admin sweeps them.
type Launchpad struct {
	st      store.Store
	bank    *ledger.Ledger
	admin   types.AccountID
	fees    ledger.PurseID
	now     types.Clock
	log     log.Logger
	metrics *metric.Metrics
}

// New installs a launchpad over the given store, creating its fee purse.
func New(st store.Store, bank *ledger.Ledger, admin types.AccountID, clock types.Clock, logger log.Logger, metrics *metric.Metrics) *Launchpad {
	return &Launchpad{
		st:      st,
		bank:    bank,
		admin:   admin,
		fees:    bank.CreatePurse(),
		now:     clock,
		log:     logger,
		metrics: metrics,
	}
}

// CreateProject registers a pending project, charging the platform fee
// out of the payment purse. Returns the new project id.
func (l *Launchpad) CreateProject(ctx context.Context, caller types.AccountID, name, symbol string, supply types.Amount, payment ledger.PurseID) (uint64, error) {
	if supply.IsZero() {
		return 0, ErrInvalidAmount
	}

	fee, err := l.PlatformFee()
	if err != nil {
		return 0, err
	}
	if err := l.bank.Transfer(payment, l.fees, fee); err != nil {
		return 0, ErrTransferFailed
	}

	total, err := l.TotalFees()
	if err != nil {
		return 0, err
	}
	newTotal, err := total.Add(fee)
	if err != nil {
		return 0, ErrMathOverflow
	}
	if err := l.st.Put(keyTotalFees, newTotal); err != nil {
		return 0, err
	}

	var counter uint64
	if _, err := l.st.Get(keyProjectCounter, &counter); err != nil {
		return 0, err
	}
	counter++
	if err := l.st.Put(keyProjectCounter, counter); err != nil {
		return 0, err
	}

	project := Project{
		Founder: caller,
		Name:    name,
		Symbol:  symbol,
		Supply:  supply,
		Status:  StatusPending,
	}
	if err := l.st.DictPut(dictProjects, projectKey(counter), project); err != nil {
		return 0, err
	}
	if l.metrics != nil {
		l.metrics.ProjectsCreated.Inc()
	}
	l.log.Info("project created",
		zap.Uint64("project", counter),
		zap.String("founder", caller.String()),
		zap.String("symbol", symbol))
	return counter, nil
}

// LaunchToken launches a pending project, granting the founder
// allocationBps basis points of the supply under the default vesting
// schedule. Founder-only.
func (l *Launchpad) LaunchToken(ctx context.Context, caller types.AccountID, projectID uint64, allocationBps types.Amount) error {
	project, err := l.GetProject(projectID)
	if err != nil {
		return err
	}
	if project.Founder != caller {
		return ErrNotAuthorized
	}
	if project.Status != StatusPending {
		return ErrAlreadyLaunched
	}

	raw, err := project.Supply.Mul(allocationBps)
	if err != nil {
		return ErrMathOverflow
	}
	founderTokens, err := raw.Div(types.NewAmount(10_000))
	if err != nil {
		return ErrMathOverflow
	}

	now := l.now()
	record := VestingRecord{
		Founder:   caller,
		Total:     founderTokens,
		CliffTime: now + DefaultCliff,
		EndTime:   now + DefaultVesting,
	}
	if err := l.st.DictPut(dictVesting, projectKey(projectID), record); err != nil {
		return err
	}

	project.Status = StatusLaunched
	project.LaunchTime = now
	if err := l.st.DictPut(dictProjects, projectKey(projectID), project); err != nil {
		return err
	}
	if l.metrics != nil {
		l.metrics.TokensLaunched.Inc()
	}
	l.log.Info("token launched",
		zap.Uint64("project", projectID),
		zap.String("founder_tokens", founderTokens.String()))
	return nil
}

// ClaimVested advances the founder's vesting record and returns the
// newly claimable amount. Founder-only. Claiming only moves the record
// forward; delivering the tokens themselves is the token contract's
// concern, outside this component.
func (l *Launchpad) ClaimVested(ctx context.Context, caller types.AccountID, projectID uint64) (types.Amount, error) {
	record, err := l.GetVesting(projectID)
	if err != nil {
		return types.Amount{}, err
	}
	if record.Founder != caller {
		return types.Amount{}, ErrNotAuthorized
	}

	now := l.now()
	if now < record.CliffTime {
		return types.Amount{}, ErrVestingNotReady
	}

	vested, err := vestedAt(record, now)
	if err != nil {
		return types.Amount{}, err
	}
	claimable, err := vested.Sub(record.Claimed)
	if err != nil {
		return types.Amount{}, ErrMathOverflow
	}
	if claimable.IsZero() {
		return types.Amount{}, ErrAlreadyClaimed
	}

	record.Claimed, err = record.Claimed.Add(claimable)
	if err != nil {
		return types.Amount{}, ErrMathOverflow
	}
	if err := l.st.DictPut(dictVesting, projectKey(projectID), record); err != nil {
		return types.Amount{}, err
	}
	if l.metrics != nil {
		l.metrics.VestingClaims.Inc()
	}
	l.log.Info("vesting claimed",
		zap.Uint64("project", projectID),
		zap.String("amount", claimable.String()))
	return claimable, nil
}

// CollectFees sweeps amount motes of accumulated platform fees to a
// recipient account. Admin-only.
func (l *Launchpad) CollectFees(ctx context.Context, caller, recipient types.AccountID, amount types.Amount) error {
	if caller != l.admin {
		return ErrNotAuthorized
	}
	if l.bank.Balance(l.fees).Cmp(amount) < 0 {
		return ErrInsufficientPayment
	}
	if err := l.bank.TransferToAccount(l.fees, recipient, amount); err != nil {
		return ErrTransferFailed
	}
	return nil
}

// SetPlatformFee updates the project-creation fee. Admin-only.
func (l *Launchpad) SetPlatformFee(ctx context.Context, caller types.AccountID, fee types.Amount) error {
	if caller != l.admin {
		return ErrNotAuthorized
	}
	return l.st.Put(keyPlatformFee, fee)
}

// PlatformFee returns the current project-creation fee.
func (l *Launchpad) PlatformFee() (types.Amount, error) {
	var fee types.Amount
	found, err := l.st.Get(keyPlatformFee, &fee)
	if err != nil {
		return types.Amount{}, err
	}
	if !found {
		return DefaultPlatformFee, nil
	}
	return fee, nil
}

// TotalFees returns the cumulative fees ever collected.
func (l *Launchpad) TotalFees() (types.Amount, error) {
	var total types.Amount
	if _, err := l.st.Get(keyTotalFees, &total); err != nil {
		return types.Amount{}, err
	}
	return total, nil
}

// FeeBalance returns the unswept fee purse balance.
func (l *Launchpad) FeeBalance() types.Amount {
	return l.bank.Balance(l.fees)
}

// GetProject returns a project by id.
func (l *Launchpad) GetProject(projectID uint64) (Project, error) {
	var project Project
	found, err := l.st.DictGet(dictProjects, projectKey(projectID), &project)
	if err != nil {
		return Project{}, err
	}
	if !found {
		return Project{}, ErrProjectNotFound
	}
	return project, nil
}

// GetVesting returns the vesting record of a launched project.
func (l *Launchpad) GetVesting(projectID uint64) (VestingRecord, error) {
	var record VestingRecord
	found, err := l.st.DictGet(dictVesting, projectKey(projectID), &record)
	if err != nil {
		return VestingRecord{}, err
	}
	if !found {
		return VestingRecord{}, ErrProjectNotFound
	}
	return record, nil
}

// vestedAt computes the linearly vested amount at time now, which must
// be at or past the cliff: the full total at or past the end time, else
// total*(now-cliff)/(end-cliff) with floor division.
func vestedAt(record VestingRecord, now types.Timestamp) (types.Amount, error) {
	if now >= record.EndTime {
		return record.Total, nil
	}
	elapsed := types.NewAmount(uint64(now - record.CliffTime))
	duration := types.NewAmount(uint64(record.EndTime - record.CliffTime))
	raw, err := record.Total.Mul(elapsed)
	if err != nil {
		return types.Amount{}, ErrMathOverflow
	}
	vested, err := raw.Div(duration)
	if err != nil {
		return types.Amount{}, ErrMathOverflow
	}
	return vested, nil
}

func projectKey(id uint64) string {
	return strconv.FormatUint(id, 10)
}
