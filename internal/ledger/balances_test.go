package ledger

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equalSplit(t *testing.T, amount float64, members ...string) []Split {
	t.Helper()
	splits, err := SplitEqually(amount, members)
	require.NoError(t, err)
	return splits
}

func TestComputeBalances(t *testing.T) {
	members := []string{"A", "B", "C"}

	tests := []struct {
		name        string
		members     []string
		expenses    []ExpenseForBalance
		settlements []SettlementForBalance
		want        map[string]float64
	}{
		{
			name:    "equal three-way split",
			members: members,
			expenses: []ExpenseForBalance{
				{PaidBy: "A", Amount: 300, Splits: []Split{{"A", 100}, {"B", 100}, {"C", 100}}},
			},
			want: map[string]float64{"A": 200, "B": -100, "C": -100},
		},
		{
			name:    "settled settlement reduces debt",
			members: members,
			expenses: []ExpenseForBalance{
				{PaidBy: "A", Amount: 300, Splits: []Split{{"A", 100}, {"B", 100}, {"C", 100}}},
			},
			settlements: []SettlementForBalance{
				{FromMemberID: "B", ToMemberID: "A", Amount: 100, Settled: true},
			},
			want: map[string]float64{"A": 100, "B": 0, "C": -100},
		},
		{
			name:    "pending settlement is ignored",
			members: members,
			expenses: []ExpenseForBalance{
				{PaidBy: "A", Amount: 300, Splits: []Split{{"A", 100}, {"B", 100}, {"C", 100}}},
			},
			settlements: []SettlementForBalance{
				{FromMemberID: "B", ToMemberID: "A", Amount: 100, Settled: false},
			},
			want: map[string]float64{"A": 200, "B": -100, "C": -100},
		},
		{
			name:    "self-pay is neutral",
			members: members,
			expenses: []ExpenseForBalance{
				{PaidBy: "B", Amount: 42, Splits: []Split{{"B", 42}}},
			},
			want: map[string]float64{"A": 0, "B": 0, "C": 0},
		},
		{
			name:    "split for unknown member is dropped",
			members: []string{"A", "B"},
			expenses: []ExpenseForBalance{
				{PaidBy: "A", Amount: 300, Splits: []Split{{"A", 100}, {"B", 100}, {"Ghost", 100}}},
			},
			want: map[string]float64{"A": 100, "B": -100},
		},
		{
			name:    "expense paid by unknown member is dropped",
			members: []string{"A", "B"},
			expenses: []ExpenseForBalance{
				{PaidBy: "Ghost", Amount: 100, Splits: []Split{{"A", 50}, {"B", 50}}},
			},
			want: map[string]float64{"A": 0, "B": 0},
		},
		{
			name:    "settlement with unknown receiver is dropped",
			members: []string{"A", "B"},
			settlements: []SettlementForBalance{
				{FromMemberID: "A", ToMemberID: "Ghost", Amount: 10, Settled: true},
			},
			want: map[string]float64{"A": 0, "B": 0},
		},
		{
			name: "no members",
			expenses: []ExpenseForBalance{
				{PaidBy: "A", Amount: 10, Splits: []Split{{"A", 10}}},
			},
			want: map[string]float64{},
		},
		{
			name:    "shares need not add up to the expense amount",
			members: []string{"A", "B"},
			expenses: []ExpenseForBalance{
				{PaidBy: "A", Amount: 100, Splits: []Split{{"B", 30}}},
			},
			want: map[string]float64{"A": 30, "B": -30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBalances(tt.members, tt.expenses, tt.settlements)
			assert.Equal(t, tt.want, got.Map())
			assert.InDelta(t, 0, got.Sum(), 1e-9)
		})
	}
}

func TestComputeBalances_KeepsMemberOrder(t *testing.T) {
	got := ComputeBalances([]string{"C", "A", "C", "B"}, nil, nil)

	require.Len(t, got, 3)
	assert.Equal(t, "C", got[0].MemberID)
	assert.Equal(t, "A", got[1].MemberID)
	assert.Equal(t, "B", got[2].MemberID)
}

func TestComputeBalances_SettlementOffsetsExpense(t *testing.T) {
	members := []string{"X", "Y"}
	before := ComputeBalances(members, nil, nil)

	// X owes Y 75 through an expense, then repays it.
	after := ComputeBalances(members,
		[]ExpenseForBalance{{PaidBy: "Y", Amount: 75, Splits: []Split{{"X", 75}}}},
		[]SettlementForBalance{{FromMemberID: "X", ToMemberID: "Y", Amount: 75, Settled: true}},
	)

	assert.Equal(t, before.Map(), after.Map())
}

func TestComputeBalances_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	members := []string{"m1", "m2", "m3", "m4", "m5", "m6"}

	for round := 0; round < 200; round++ {
		expenses, settlements := randomLedger(rng, members)
		got := ComputeBalances(members, expenses, settlements)
		assert.InDelta(t, 0, got.Sum(), 1e-6, "round %d", round)
	}
}

func TestSummaries_NetMatchesBalances(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	members := []string{"a", "b", "c", "d"}
	expenses, settlements := randomLedger(rng, members)
	expenses = append(expenses, ExpenseForBalance{PaidBy: "a", Amount: 10, Splits: []Split{{"zz", 10}}})

	balances := ComputeBalances(members, expenses, settlements)
	summaries := Summaries(members, expenses, settlements)

	require.Len(t, summaries, len(balances))
	for i, s := range summaries {
		assert.Equal(t, balances[i].MemberID, s.MemberID)
		assert.InDelta(t, balances[i].Amount, s.Net, 1e-6)
	}
}

func TestSummaries_Components(t *testing.T) {
	members := []string{"A", "B", "C"}
	summaries := Summaries(members,
		[]ExpenseForBalance{{PaidBy: "A", Amount: 300, Splits: []Split{{"A", 100}, {"B", 100}, {"C", 100}}}},
		[]SettlementForBalance{{FromMemberID: "B", ToMemberID: "A", Amount: 100, Settled: true}},
	)

	a := summaries[0]
	assert.Equal(t, 300.0, a.TotalPaid)
	assert.Equal(t, 100.0, a.TotalShare)
	assert.Equal(t, 100.0, a.SettledIn)
	assert.Equal(t, 100.0, a.Net)

	b := summaries[1]
	assert.Equal(t, 0.0, b.TotalPaid)
	assert.Equal(t, 100.0, b.SettledOut)
	assert.Equal(t, 0.0, b.Net)
}

// randomLedger builds expenses in whole currency units so balances stay exact.
func randomLedger(rng *rand.Rand, members []string) ([]ExpenseForBalance, []SettlementForBalance) {
	var expenses []ExpenseForBalance
	for i := 0; i < 1+rng.Intn(10); i++ {
		payer := members[rng.Intn(len(members))]
		var splits []Split
		var total float64
		for _, m := range members {
			if rng.Intn(3) == 0 {
				continue
			}
			share := float64(1 + rng.Intn(500))
			splits = append(splits, Split{MemberID: m, Share: share})
			total += share
		}
		expenses = append(expenses, ExpenseForBalance{PaidBy: payer, Amount: total, Splits: splits})
	}

	var settlements []SettlementForBalance
	for i := 0; i < rng.Intn(4); i++ {
		from := members[rng.Intn(len(members))]
		to := members[rng.Intn(len(members))]
		settlements = append(settlements, SettlementForBalance{
			FromMemberID: from,
			ToMemberID:   to,
			Amount:       float64(1 + rng.Intn(200)),
			Settled:      rng.Intn(2) == 0,
		})
	}
	return expenses, settlements
}

func TestSplitEqually(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		members []string
		want    []float64
		wantErr error
	}{
		{name: "even", amount: 300, members: []string{"A", "B", "C"}, want: []float64{100, 100, 100}},
		{name: "remainder goes to first members", amount: 100, members: []string{"A", "B", "C"}, want: []float64{33.34, 33.33, 33.33}},
		{name: "two paise over three", amount: 0.02, members: []string{"A", "B", "C"}, want: []float64{0.01, 0.01, 0}},
		{name: "single member", amount: 12.5, members: []string{"A"}, want: []float64{12.5}},
		{name: "no members", amount: 10, wantErr: ErrNoMembers},
		{name: "negative amount", amount: -1, members: []string{"A"}, wantErr: ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := SplitEqually(tt.amount, tt.members)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, splits, len(tt.want))

			var sum float64
			for i, s := range splits {
				assert.Equal(t, tt.members[i], s.MemberID)
				assert.InDelta(t, tt.want[i], s.Share, 1e-9)
				sum += s.Share
			}
			assert.InDelta(t, tt.amount, sum, 1e-9)
		})
	}
}

func TestSplitByWeights(t *testing.T) {
	splits, err := SplitByWeights(1000, []string{"A", "B", "C"}, []float64{50, 30, 20})
	require.NoError(t, err)
	assert.Equal(t, []Split{{"A", 500}, {"B", 300}, {"C", 200}}, splits)

	splits, err = SplitByWeights(10, []string{"A", "B"}, []float64{2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 6.67, splits[0].Share, 1e-9)
	assert.InDelta(t, 3.33, splits[1].Share, 1e-9)

	_, err = SplitByWeights(10, []string{"A", "B"}, []float64{1})
	assert.ErrorIs(t, err, ErrWeightMismatch)

	_, err = SplitByWeights(10, []string{"A", "B"}, []float64{0, 0})
	assert.ErrorIs(t, err, ErrZeroWeight)
}

func TestSplitEqually_FeedsBalances(t *testing.T) {
	members := []string{"A", "B", "C"}
	got := ComputeBalances(members, []ExpenseForBalance{
		{PaidBy: "A", Amount: 300, Splits: equalSplit(t, 300, members...)},
	}, nil)

	assert.InDelta(t, 200, got.Get("A"), 1e-9)
	assert.InDelta(t, -100, got.Get("B"), 1e-9)
	assert.InDelta(t, -100, got.Get("C"), 1e-9)
	assert.False(t, math.IsNaN(got.Sum()))
}

func TestComputeBalances_FollowsSplitsNotAmount(t *testing.T) {
	members := []string{"A", "B"}
	splits := []Split{{MemberID: "A", Share: 15}, {MemberID: "B", Share: 15}}

	got := ComputeBalances(members, []ExpenseForBalance{{PaidBy: "A", Amount: 999, Splits: splits}}, nil)
	want := ComputeBalances(members, []ExpenseForBalance{{PaidBy: "A", Amount: 30, Splits: splits}}, nil)

	assert.Equal(t, want, got)
	assert.InDelta(t, 15, got.Get("A"), Epsilon)
	assert.InDelta(t, -15, got.Get("B"), Epsilon)
}
