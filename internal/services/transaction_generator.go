package services

import (
	"sort"
	"sync"
	"time"

	"finance-tracker/internal/calendar"
	"finance-tracker/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// CategoryProfile describes the amounts a category usually carries.
type CategoryProfile struct {
	Name      string
	MinAmount float64
	MaxAmount float64
	Weight    int
}

type transactionGenerator struct {
	mu             sync.Mutex
	faker          *gofakeit.Faker
	incomeSources  []CategoryProfile
	expenseProfile []CategoryProfile
	totalWeight    int
}

const (
	incomeShare = 0.15
	salaryDay   = 1
)

// NewTransactionGenerator creates a generator seeded from the clock.
func NewTransactionGenerator() TransactionGeneratorInterface {
	return NewSeededTransactionGenerator(0)
}

// NewSeededTransactionGenerator returns a reproducible generator for a
// non-zero seed.
func NewSeededTransactionGenerator(seed uint64) TransactionGeneratorInterface {
	g := &transactionGenerator{
		faker:          gofakeit.New(seed),
		incomeSources:  defaultIncomeSources(),
		expenseProfile: defaultExpenseProfile(),
	}
	for _, p := range g.expenseProfile {
		g.totalWeight += p.Weight
	}
	return g
}

func defaultIncomeSources() []CategoryProfile {
	return []CategoryProfile{
		{"Salary", 1500, 5000, 6},
		{"Freelance", 100, 1500, 2},
		{"Interest", 1, 50, 1},
		{"Refund", 5, 200, 1},
	}
}

func defaultExpenseProfile() []CategoryProfile {
	return []CategoryProfile{
		{"Food", 5, 120, 10},
		{"Rent", 600, 2000, 1},
		{"Transport", 2, 80, 6},
		{"Utilities", 30, 250, 2},
		{"Entertainment", 8, 150, 4},
		{"Health", 10, 300, 2},
		{"Shopping", 10, 400, 4},
		{"Travel", 50, 1200, 1},
		{"Education", 15, 500, 1},
	}
}

// GenerateTransaction returns one income or expense dated on date.
func (g *transactionGenerator) GenerateTransaction(date calendar.Date) models.Transaction {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.faker.Float64() < incomeShare {
		return g.income(date, g.pickIncome())
	}
	return g.expense(date, g.pickExpense())
}

// GenerateMonth returns count transactions spread over the month in date
// order. The first record is a salary on the first day of the month.
func (g *transactionGenerator) GenerateMonth(year int, month time.Month, count int) []models.Transaction {
	if count <= 0 {
		return []models.Transaction{}
	}

	days := calendar.DaysInMonth(year, month)
	transactions := make([]models.Transaction, 0, count)

	g.mu.Lock()
	transactions = append(transactions, g.income(calendar.NewDate(year, month, salaryDay), g.incomeSources[0]))
	g.mu.Unlock()

	for len(transactions) < count {
		g.mu.Lock()
		day := g.faker.IntRange(1, days)
		g.mu.Unlock()
		transactions = append(transactions, g.GenerateTransaction(calendar.NewDate(year, month, day)))
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	})
	return transactions
}

func (g *transactionGenerator) income(date calendar.Date, source CategoryProfile) models.Transaction {
	return models.Transaction{
		Date:     date,
		Type:     models.TransactionTypeIncome,
		Amount:   g.amount(source),
		Category: source.Name,
		Note:     g.faker.Company(),
	}
}

func (g *transactionGenerator) expense(date calendar.Date, profile CategoryProfile) models.Transaction {
	return models.Transaction{
		Date:     date,
		Type:     models.TransactionTypeExpense,
		Amount:   g.amount(profile),
		Category: profile.Name,
		Note:     g.faker.Sentence(3),
	}
}

func (g *transactionGenerator) amount(profile CategoryProfile) decimal.Decimal {
	return decimal.NewFromFloat(g.faker.Price(profile.MinAmount, profile.MaxAmount)).Round(models.AmountScale)
}

func (g *transactionGenerator) pickIncome() CategoryProfile {
	return g.incomeSources[g.faker.IntRange(0, len(g.incomeSources)-1)]
}

// pickExpense draws a category proportionally to its weight.
func (g *transactionGenerator) pickExpense() CategoryProfile {
	roll := g.faker.IntRange(1, g.totalWeight)
	for _, p := range g.expenseProfile {
		roll -= p.Weight
		if roll <= 0 {
			return p
		}
	}
	return g.expenseProfile[len(g.expenseProfile)-1]
}
