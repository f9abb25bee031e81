package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

const providerID int64 = 1

var day = time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func free(hour, minute int) domain.TimeSlot {
	return domain.NewTimeSlot(providerID, at(hour, minute))
}

func reserved(hour, minute int, reservationID int64) domain.TimeSlot {
	s := free(hour, minute)
	s.ReservationID = ptr.Ptr(reservationID)
	return s
}

func window(start string, minutes int) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{Start: types.TimeString(start), Duration: time.Duration(minutes) * time.Minute}
}

func TestGenerateDay(t *testing.T) {
	plan := domain.DayPlan{
		Date:    day,
		Windows: []domain.AvailabilityWindow{window("08:00", 60), window("12:00", 40)},
	}

	slots, err := GenerateDay(providerID, plan)
	require.NoError(t, err)

	// 60 minutes -> 4 slots, 40 minutes -> 2 slots (remainder dropped)
	require.Len(t, slots, 6)
	assert.Equal(t, at(8, 0), slots[0].Start)
	assert.Equal(t, at(8, 45), slots[3].Start)
	assert.Equal(t, at(12, 0), slots[4].Start)
	assert.Equal(t, at(12, 15), slots[5].Start)

	for _, s := range slots {
		assert.Equal(t, domain.SlotQuantum, s.Duration)
		assert.True(t, s.IsFree())
		assert.Equal(t, providerID, s.ProviderID)
		assert.NoError(t, s.Validate())
	}
}

func TestGenerateDay_ShortWindowYieldsNothing(t *testing.T) {
	slots, err := GenerateDay(providerID, domain.DayPlan{Date: day, Windows: []domain.AvailabilityWindow{window("09:00", 10)}})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateDay_InvalidStart(t *testing.T) {
	_, err := GenerateDay(providerID, domain.DayPlan{Date: day, Windows: []domain.AvailabilityWindow{window("9am", 30)}})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestGeneratePlan_KeepsPlanOrder(t *testing.T) {
	next := day.AddDate(0, 0, 1)
	slots, err := GeneratePlan(providerID, []domain.DayPlan{
		{Date: next, Windows: []domain.AvailabilityWindow{window("08:00", 15)}},
		{Date: day, Windows: []domain.AvailabilityWindow{window("08:00", 15)}},
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, domain.SameDate(slots[0].Start, next))
	assert.True(t, domain.SameDate(slots[1].Start, day))
}

func TestCoalesceDay_EmptyDay(t *testing.T) {
	got, err := CoalesceDay(day, nil, domain.DefaultEnvelope())
	require.NoError(t, err)

	assert.Equal(t, []domain.ScheduleInterval{
		{Start: at(8, 0), Duration: 13 * time.Hour, Status: domain.StatusUnavailable},
	}, got)
}

func TestCoalesceDay_ExactSequence(t *testing.T) {
	slots := []domain.TimeSlot{
		free(9, 0), free(9, 15),
		reserved(9, 30, 100), reserved(9, 45, 100),
		reserved(10, 0, 101),
		free(11, 0),
	}

	got, err := CoalesceDay(day, slots, domain.DefaultEnvelope())
	require.NoError(t, err)

	want := []domain.ScheduleInterval{
		{Start: at(8, 0), Duration: time.Hour, Status: domain.StatusUnavailable},
		{Start: at(9, 0), Duration: 30 * time.Minute, Status: domain.StatusAvailable},
		{Start: at(9, 30), Duration: 30 * time.Minute, Status: domain.StatusReserved, Reservation: &domain.ReservationRef{ID: 100}},
		{Start: at(10, 0), Duration: 15 * time.Minute, Status: domain.StatusReserved, Reservation: &domain.ReservationRef{ID: 101}},
		{Start: at(10, 15), Duration: 45 * time.Minute, Status: domain.StatusUnavailable},
		{Start: at(11, 0), Duration: 15 * time.Minute, Status: domain.StatusAvailable},
		{Start: at(11, 15), Duration: 9*time.Hour + 45*time.Minute, Status: domain.StatusUnavailable},
	}
	assert.Equal(t, want, got)
}

func TestCoalesceDay_FullDayNoPadding(t *testing.T) {
	plan := domain.DayPlan{Date: day, Windows: []domain.AvailabilityWindow{window("08:00", 13*60)}}
	slots, err := GenerateDay(providerID, plan)
	require.NoError(t, err)

	got, err := CoalesceDay(day, slots, domain.DefaultEnvelope())
	require.NoError(t, err)
	assert.Equal(t, []domain.ScheduleInterval{
		{Start: at(8, 0), Duration: 13 * time.Hour, Status: domain.StatusAvailable},
	}, got)
}

func TestCoalesceDay_UnsortedInput(t *testing.T) {
	got, err := CoalesceDay(day, []domain.TimeSlot{free(8, 15), free(8, 0)}, domain.DefaultEnvelope())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.ScheduleInterval{Start: at(8, 0), Duration: 30 * time.Minute, Status: domain.StatusAvailable}, got[0])
}

func TestCoalesceDay_Idempotent(t *testing.T) {
	slots := []domain.TimeSlot{
		free(8, 0), free(8, 15), reserved(8, 30, 7), reserved(8, 45, 7),
		free(10, 0), reserved(10, 15, 8), free(20, 45),
	}

	first, err := CoalesceDay(day, slots, domain.DefaultEnvelope())
	require.NoError(t, err)

	second, err := CoalesceDay(day, ExpandIntervals(providerID, first), domain.DefaultEnvelope())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCoalesceDay_CoversEnvelope(t *testing.T) {
	slots := []domain.TimeSlot{free(12, 0), reserved(12, 15, 3), free(15, 30)}

	got, err := CoalesceDay(day, slots, domain.DefaultEnvelope())
	require.NoError(t, err)

	var total time.Duration
	cursor := at(8, 0)
	for _, iv := range got {
		assert.Equal(t, cursor, iv.Start, "intervals must be chronological and gapless")
		cursor = iv.End()
		total += iv.Duration
	}
	assert.Equal(t, 13*time.Hour, total)
}

func TestSlotsPerRun(t *testing.T) {
	n, err := SlotsPerRun(45 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = SlotsPerRun(20 * time.Minute)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = SlotsPerRun(0)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestFindReservableRuns_OverlappingWindows(t *testing.T) {
	daySlots := []domain.TimeSlot{free(8, 0), free(8, 15), free(8, 30), free(8, 45)}

	got := FindReservableRuns(providerID, daySlots, 2)

	assert.Equal(t, []domain.ReservableInterval{
		{ProviderID: providerID, Start: at(8, 0), Duration: 30 * time.Minute},
		{ProviderID: providerID, Start: at(8, 15), Duration: 30 * time.Minute},
		{ProviderID: providerID, Start: at(8, 30), Duration: 30 * time.Minute},
	}, got)
}

func TestFindReservableRuns_SkipsGaps(t *testing.T) {
	daySlots := []domain.TimeSlot{free(8, 0), free(8, 15), free(9, 0), free(9, 15), free(9, 30)}

	got := FindReservableRuns(providerID, daySlots, 3)

	require.Len(t, got, 1)
	assert.Equal(t, at(9, 0), got[0].Start)
	assert.Equal(t, 45*time.Minute, got[0].Duration)
}

func TestFindReservableRuns_RequiresExactAdjacency(t *testing.T) {
	daySlots := []domain.TimeSlot{free(8, 0), free(8, 20)}

	runs := FindReservableRuns(providerID, daySlots, 2)
	assert.Empty(t, runs)

	// no 08:15 slot, so the same window cannot be claimed either
	_, err := ClaimRun(0, providerID, at(8, 0), 30*time.Minute, daySlots)
	assert.ErrorIs(t, err, ErrNoAvailableTimeSlots)
}

func TestFindReservableRuns_NotEnoughSlots(t *testing.T) {
	assert.Empty(t, FindReservableRuns(providerID, []domain.TimeSlot{free(8, 0)}, 2))
	assert.Empty(t, FindReservableRuns(providerID, nil, 1))
}

func TestGroupByDate(t *testing.T) {
	next := domain.NewTimeSlot(providerID, at(9, 0).AddDate(0, 0, 1))
	groups := GroupByDate([]domain.TimeSlot{free(9, 15), next, free(9, 0)}, time.UTC)

	require.Len(t, groups, 2)
	require.Len(t, groups["2024-03-11"], 2)
	assert.Equal(t, at(9, 0), groups["2024-03-11"][0].Start)
	assert.Len(t, groups["2024-03-12"], 1)
}

func TestMergeSlots_KeepsProposedAndAppendsNew(t *testing.T) {
	a, b, c, d := free(8, 0), free(8, 15), reserved(8, 30, 5), free(8, 45)

	merged, err := MergeSlots([]domain.TimeSlot{a, b, c}, []domain.TimeSlot{free(8, 0), d})
	require.NoError(t, err)

	assert.Equal(t, []domain.TimeSlot{a, c, d}, merged)
}

func TestMergeSlots_ReservedSlotInProposalIsRejected(t *testing.T) {
	current := []domain.TimeSlot{free(8, 0), reserved(8, 15, 5)}

	merged, err := MergeSlots(current, []domain.TimeSlot{free(8, 0), free(8, 15)})

	assert.ErrorIs(t, err, ErrInvalidSchedule)
	assert.Nil(t, merged)
}

func TestMergeSlots_DeduplicatesProposal(t *testing.T) {
	merged, err := MergeSlots(nil, []domain.TimeSlot{free(9, 0), free(9, 0), free(9, 15)})
	require.NoError(t, err)
	assert.Equal(t, []domain.TimeSlot{free(9, 0), free(9, 15)}, merged)
}

func TestMergeSlots_EmptyProposalKeepsReservedOnly(t *testing.T) {
	current := []domain.TimeSlot{free(8, 0), reserved(8, 15, 5), free(8, 30)}

	merged, err := MergeSlots(current, nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.TimeSlot{reserved(8, 15, 5)}, merged)
}

func TestDiffSlots(t *testing.T) {
	current := []domain.TimeSlot{free(8, 0), free(8, 15), reserved(8, 30, 5)}
	merged := []domain.TimeSlot{free(8, 0), reserved(8, 30, 5), free(8, 45)}

	removed, added := DiffSlots(current, merged)

	assert.Equal(t, []domain.TimeSlot{free(8, 15)}, removed)
	assert.Equal(t, []domain.TimeSlot{free(8, 45)}, added)
}

func TestClaimRun_FortyFiveMinutes(t *testing.T) {
	existing := []domain.TimeSlot{free(8, 0), free(8, 15), free(8, 30), free(8, 45)}

	keys, err := ClaimRun(0, providerID, at(8, 0), 45*time.Minute, existing)
	require.NoError(t, err)

	assert.Equal(t, []domain.SlotKey{
		domain.NewSlotKey(providerID, at(8, 0)),
		domain.NewSlotKey(providerID, at(8, 15)),
		domain.NewSlotKey(providerID, at(8, 30)),
	}, keys)
}

func TestClaimRun_MissingSlot(t *testing.T) {
	existing := []domain.TimeSlot{free(8, 0), free(8, 15), free(8, 45)}

	keys, err := ClaimRun(0, providerID, at(8, 0), 45*time.Minute, existing)

	assert.ErrorIs(t, err, ErrNoAvailableTimeSlots)
	assert.Nil(t, keys)
}

func TestClaimRun_HeldByOtherReservation(t *testing.T) {
	existing := []domain.TimeSlot{free(8, 0), reserved(8, 15, 9)}

	_, err := ClaimRun(0, providerID, at(8, 0), 30*time.Minute, existing)
	assert.ErrorIs(t, err, ErrTimeSlotsAlreadyReserved)

	_, err = ClaimRun(4, providerID, at(8, 0), 30*time.Minute, existing)
	assert.ErrorIs(t, err, ErrTimeSlotsAlreadyReserved)
}

func TestClaimRun_OwnSlotsAreReclaimable(t *testing.T) {
	existing := []domain.TimeSlot{reserved(8, 0, 9), reserved(8, 15, 9), free(8, 30)}

	keys, err := ClaimRun(9, providerID, at(8, 15), 30*time.Minute, existing)
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	released := ReleasedKeys([]domain.SlotKey{
		domain.NewSlotKey(providerID, at(8, 0)),
		domain.NewSlotKey(providerID, at(8, 15)),
	}, keys)
	assert.Equal(t, []domain.SlotKey{domain.NewSlotKey(providerID, at(8, 0))}, released)
}

func TestClaimRun_InvalidDuration(t *testing.T) {
	_, err := ClaimRun(0, providerID, at(8, 0), 20*time.Minute, []domain.TimeSlot{free(8, 0), free(8, 15)})
	assert.ErrorIs(t, err, ErrConfiguration)
}
