package main

import (
	"context"
	"fmt"
	"time"

	assetapp "github.com/assetops/backend/internal/application/asset"
	financeapp "github.com/assetops/backend/internal/application/finance"
	identityapp "github.com/assetops/backend/internal/application/identity"
	leaseapp "github.com/assetops/backend/internal/application/lease"
	partnerapp "github.com/assetops/backend/internal/application/partner"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/assetops/backend/internal/infrastructure/persistence"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options controls what the seeder creates
type Options struct {
	TenantCode    string
	TenantName    string
	AdminEmail    string
	AdminPassword string
	// Count is the number of assets; the other entities scale from it
	Count int
	// Seed makes the generated data reproducible; 0 picks a random seed
	Seed uint64
}

// Summary counts what a run created
type Summary struct {
	TenantID   uuid.UUID
	Categories int
	Locations  int
	Partners   int
	Assets     int
	Leases     int
	ForexRates int
}

var categoryNames = []struct{ code, name string }{
	{"IT", "IT equipment"},
	{"FURN", "Furniture"},
	{"VEH", "Vehicles"},
	{"MACH", "Machinery"},
	{"BLDG", "Buildings"},
}

var quoteCurrencies = []string{"EUR", "GBP", "JPY", "CNY", "CHF"}

type seeder struct {
	tenants    *identityapp.TenantService
	users      identity.UserRepository
	categories *assetapp.CategoryService
	locations  *assetapp.LocationService
	assets     *assetapp.AssetService
	partners   *partnerapp.PartnerService
	leases     *leaseapp.LeaseService
	forex      *financeapp.ForexService
	log        *zap.Logger
	faker      *gofakeit.Faker
}

func newSeeder(db *gorm.DB, log *zap.Logger, seed uint64) *seeder {
	tenantRepo := persistence.NewGormTenantRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	roleRepo := persistence.NewGormRoleRepository(db)
	deptRepo := persistence.NewGormDepartmentRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	locationRepo := persistence.NewGormLocationRepository(db)
	assetRepo := persistence.NewGormAssetRepository(db)
	partnerRepo := persistence.NewGormPartnerRepository(db)
	contractRepo := persistence.NewGormContractRepository(db)

	return &seeder{
		tenants:    identityapp.NewTenantService(tenantRepo, roleRepo, userRepo, persistence.NewGormIdentityTransactionScope(db)),
		users:      userRepo,
		categories: assetapp.NewCategoryService(categoryRepo, assetRepo),
		locations:  assetapp.NewLocationService(locationRepo),
		assets: assetapp.NewAssetService(assetRepo, categoryRepo, persistence.NewGormComponentRepository(db),
			assetapp.References{
				Locations:   locationRepo,
				CostCentres: persistence.NewGormCostCentreRepository(db),
				Departments: deptRepo,
				Users:       userRepo,
				Partners:    partnerRepo,
			}, nil),
		partners: partnerapp.NewPartnerService(partnerRepo),
		leases:   leaseapp.NewLeaseService(persistence.NewGormLeaseRepository(db), contractRepo, assetRepo, partnerRepo, nil),
		forex:    financeapp.NewForexService(persistence.NewGormForexRateRepository(db)),
		log:      log,
		faker:    gofakeit.New(seed),
	}
}

// Run creates the demo tenant with its administrator, then fills it
func (s *seeder) Run(ctx context.Context, opts Options) (*Summary, error) {
	tenant, err := s.tenants.Create(ctx, identityapp.CreateTenantInput{
		Code:          opts.TenantCode,
		Name:          opts.TenantName,
		ContactEmail:  opts.AdminEmail,
		Currency:      string(valueobject.DefaultCurrency),
		AdminEmail:    opts.AdminEmail,
		AdminPassword: opts.AdminPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	admin, err := s.users.FindByEmail(ctx, tenant.ID, opts.AdminEmail)
	if err != nil {
		return nil, fmt.Errorf("find administrator: %w", err)
	}
	ctx = session.WithSession(ctx, &session.Session{
		TenantID: tenant.ID,
		UserID:   admin.ID,
		UserRole: identity.AdminRoleCode,
		Email:    admin.Email,
	})
	s.log.Info("Tenant created", zap.String("tenant_code", tenant.Code), zap.String("tenant_id", tenant.ID.String()))

	sum := &Summary{TenantID: tenant.ID}
	count := max(opts.Count, 1)

	categoryIDs := make([]uuid.UUID, 0, len(categoryNames))
	for _, c := range categoryNames {
		dto, err := s.categories.Create(ctx, assetapp.CategoryInput{
			Code:             c.code,
			Name:             c.name,
			UsefulLifeMonths: s.faker.IntRange(24, 120),
		})
		if err != nil {
			return nil, fmt.Errorf("create category %s: %w", c.code, err)
		}
		categoryIDs = append(categoryIDs, dto.ID)
	}
	sum.Categories = len(categoryIDs)

	locationIDs := make([]uuid.UUID, 0, count/5+1)
	for i := range count/5 + 1 {
		addr := s.faker.Address()
		dto, err := s.locations.Create(ctx, assetapp.LocationInput{
			Code:    fmt.Sprintf("LOC-%03d", i+1),
			Name:    addr.City + " office",
			Address: addr.Street,
			City:    addr.City,
			Country: s.faker.CountryAbr(),
		})
		if err != nil {
			return nil, fmt.Errorf("create location: %w", err)
		}
		locationIDs = append(locationIDs, dto.ID)
	}
	sum.Locations = len(locationIDs)

	partnerIDs := make([]uuid.UUID, 0, count/5+1)
	for i := range count/5 + 1 {
		dto, err := s.partners.Create(ctx, partnerapp.PartnerInput{
			Code:    fmt.Sprintf("P-%03d", i+1),
			Name:    s.faker.Company(),
			Type:    s.faker.RandomString([]string{"supplier", "lessor"}),
			Email:   s.faker.Email(),
			Phone:   s.faker.Phone(),
			Address: s.faker.Address().Address,
		})
		if err != nil {
			return nil, fmt.Errorf("create partner: %w", err)
		}
		partnerIDs = append(partnerIDs, dto.ID)
	}
	sum.Partners = len(partnerIDs)

	assetIDs := make([]uuid.UUID, 0, count)
	for i := range count {
		locationID := locationIDs[s.faker.IntN(len(locationIDs))]
		supplierID := partnerIDs[s.faker.IntN(len(partnerIDs))]
		acquired := s.faker.DateRange(time.Now().AddDate(-5, 0, 0), time.Now())
		dto, err := s.assets.Create(ctx, assetapp.CreateAssetInput{
			Tag:             fmt.Sprintf("AST-%05d", i+1),
			Name:            s.faker.ProductName(),
			Description:     s.faker.Sentence(8),
			SerialNumber:    s.faker.Regex("[A-Z]{3}[0-9]{8}"),
			CategoryID:      categoryIDs[s.faker.IntN(len(categoryIDs))],
			SupplierID:      &supplierID,
			AssignmentInput: assetapp.AssignmentInput{LocationID: &locationID},
			AcquisitionDate: valueobject.NewDate(acquired),
			AcquisitionCost: decimal.NewFromFloat(s.faker.Price(200, 50000)).Round(2),
		})
		if err != nil {
			return nil, fmt.Errorf("create asset: %w", err)
		}
		assetIDs = append(assetIDs, dto.ID)
	}
	sum.Assets = len(assetIDs)

	// every fifth asset is leased out
	for i := 0; i < len(assetIDs); i += 5 {
		start := s.faker.DateRange(time.Now().AddDate(-2, 0, 0), time.Now())
		_, err := s.leases.Create(ctx, leaseapp.LeaseInput{
			AssetID:       assetIDs[i],
			PartnerID:     partnerIDs[s.faker.IntN(len(partnerIDs))],
			Direction:     "lessor",
			StartDate:     valueobject.NewDate(start),
			EndDate:       valueobject.NewDate(start.AddDate(s.faker.IntRange(1, 5), 0, 0)),
			PaymentAmount: decimal.NewFromFloat(s.faker.Price(100, 5000)).Round(2),
			Frequency:     s.faker.RandomString([]string{"monthly", "quarterly", "yearly"}),
			DiscountRate:  decimal.NewFromFloat(0.05),
		})
		if err != nil {
			return nil, fmt.Errorf("create lease: %w", err)
		}
		sum.Leases++
	}

	today := valueobject.NewDate(time.Now())
	for _, quote := range quoteCurrencies {
		_, err := s.forex.Create(ctx, financeapp.CreateForexRateInput{
			Base:          string(valueobject.DefaultCurrency),
			Quote:         quote,
			Rate:          decimal.NewFromFloat(s.faker.Float64Range(0.5, 150)).Round(6),
			EffectiveDate: today,
		})
		if err != nil {
			return nil, fmt.Errorf("create forex rate %s: %w", quote, err)
		}
		sum.ForexRates++
	}

	return sum, nil
}
