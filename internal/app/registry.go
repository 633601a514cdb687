package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	"github.com/Apurer/pet-registry/internal/clients/http/notifier"
	petsmemory "github.com/Apurer/pet-registry/internal/domains/pets/adapters/memory"
	petsnotification "github.com/Apurer/pet-registry/internal/domains/pets/adapters/notification"
	petsobs "github.com/Apurer/pet-registry/internal/domains/pets/adapters/observability"
	petspostgres "github.com/Apurer/pet-registry/internal/domains/pets/adapters/persistence/postgres"
	petsusers "github.com/Apurer/pet-registry/internal/domains/pets/adapters/users"
	petsworkflows "github.com/Apurer/pet-registry/internal/domains/pets/adapters/workflows"
	petsapp "github.com/Apurer/pet-registry/internal/domains/pets/application"
	petsdomain "github.com/Apurer/pet-registry/internal/domains/pets/domain"
	petsports "github.com/Apurer/pet-registry/internal/domains/pets/ports"
	usermemory "github.com/Apurer/pet-registry/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/pet-registry/internal/domains/users/adapters/observability"
	userpostgres "github.com/Apurer/pet-registry/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/Apurer/pet-registry/internal/domains/users/application"
	userports "github.com/Apurer/pet-registry/internal/domains/users/ports"
	vaccmemory "github.com/Apurer/pet-registry/internal/domains/vaccinations/adapters/memory"
	vaccpostgres "github.com/Apurer/pet-registry/internal/domains/vaccinations/adapters/persistence/postgres"
	vaccapp "github.com/Apurer/pet-registry/internal/domains/vaccinations/application"
	vaccdomain "github.com/Apurer/pet-registry/internal/domains/vaccinations/domain"
	vaccports "github.com/Apurer/pet-registry/internal/domains/vaccinations/ports"
	"github.com/Apurer/pet-registry/internal/platform/memtx"
	"github.com/Apurer/pet-registry/internal/platform/migrations"
	platformobservability "github.com/Apurer/pet-registry/internal/platform/observability"
	platformpostgres "github.com/Apurer/pet-registry/internal/platform/postgres"
)

// Registry exposes the wired, instrumented services.
type Registry struct {
	Pets  petsports.Service
	Users userports.Service
}

// Dependencies are the process-level resources the registry is built on. All fields are optional:
// a nil DB selects the in-memory stores and a nil Temporal client delivers notifications inline.
type Dependencies struct {
	DB          *gorm.DB
	Temporal    client.Client
	Instruments *platformobservability.Instruments
	Clock       func() time.Time
}

// Build wires stores, the vaccination scheduler, the user directory and the notification path.
func Build(cfg Config, deps Dependencies) (*Registry, error) {
	logger := effectiveLogger(deps.Instruments)
	now := deps.Clock
	if now == nil {
		now = time.Now
	}

	var (
		pets      petsports.PetStore
		adoptions petsports.AdoptionStore
		breeds    petsports.BreedStore
		doses     vaccports.Store
		userRepo  userports.Repository
		uow       petsports.UnitOfWork
	)
	if deps.DB != nil {
		pets = petspostgres.NewPetStore(deps.DB)
		adoptions = petspostgres.NewAdoptionStore(deps.DB)
		breeds = petspostgres.NewBreedStore(deps.DB)
		doses = vaccpostgres.NewStore(deps.DB)
		userRepo = userpostgres.NewRepository(deps.DB)
		uow = platformpostgres.NewUnitOfWork(deps.DB)
	} else {
		petStore := petsmemory.NewPetStore()
		petStore.WithClock(now)
		pets = petStore
		adoptions = petsmemory.NewAdoptionStore()
		breeds = petsmemory.NewBreedStore(defaultBreeds()...)
		doses = vaccmemory.NewStore()
		userRepo = usermemory.NewRepository()
		uow = memtx.NewUnitOfWork()
	}

	users := userobs.New(
		userapp.NewService(userRepo),
		userobs.WithLogger(logger),
		userobs.WithTracer(deps.Instruments.Tracer("internal.users.application")),
		userobs.WithMeter(deps.Instruments.Meter("internal.users.application")),
	)
	scheduler := vaccapp.NewScheduler(doses, vaccdomain.DefaultStrategies(vaccdomain.DefaultCatalog()),
		vaccapp.WithLogger(logger),
		vaccapp.WithClock(now),
		vaccapp.WithIdempotentScheduling(cfg.IdempotentVaccinations),
	)

	var gateway petsports.NotificationGateway
	if deps.Temporal != nil {
		gateway = petsworkflows.NewTemporalNotifier(deps.Temporal)
		logger.Info("adoption notifications delivered through Temporal", slog.String("namespace", cfg.TemporalNamespace))
	} else {
		var err error
		if gateway, err = NotificationGateway(cfg, logger); err != nil {
			return nil, err
		}
	}

	core, err := petsapp.NewService(petsapp.Dependencies{
		Pets:       pets,
		Adoptions:  adoptions,
		Breeds:     breeds,
		Users:      petsusers.NewDirectory(users),
		Vaccines:   scheduler,
		Notifier:   gateway,
		UnitOfWork: uow,
	}, petsapp.WithLogger(logger), petsapp.WithClock(now))
	if err != nil {
		return nil, err
	}
	petService := petsobs.New(
		core,
		petsobs.WithLogger(logger),
		petsobs.WithTracer(deps.Instruments.Tracer("internal.pets.application")),
		petsobs.WithMeter(deps.Instruments.Meter("internal.pets.application")),
	)
	return &Registry{Pets: petService, Users: users}, nil
}

// NotificationGateway returns the gateway that delivers notifications directly: the messaging
// service when NOTIFIER_URL is set, the log otherwise.
func NotificationGateway(cfg Config, logger *slog.Logger) (petsports.NotificationGateway, error) {
	if cfg.NotifierURL == "" {
		logger.Warn("NOTIFIER_URL not set, adoption notifications are only logged")
		return petsnotification.NewLogGateway(logger), nil
	}
	c, err := notifier.NewClient(cfg.NotifierURL, nil)
	if err != nil {
		return nil, fmt.Errorf("configure notifier client: %w", err)
	}
	return petsnotification.NewHTTPGateway(c, cfg.NotifierToken, cfg.NotifierTemplate), nil
}

// ConnectTemporal dials the Temporal frontend with tracing and structured logging.
func ConnectTemporal(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func defaultBreeds() []petsdomain.Breed {
	breeds := make([]petsdomain.Breed, 0, len(migrations.DefaultBreeds))
	for _, b := range migrations.DefaultBreeds {
		breeds = append(breeds, petsdomain.Breed{ID: b.ID, Name: b.Name, Species: petsdomain.Species(b.Species)})
	}
	return breeds
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	if instruments == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
