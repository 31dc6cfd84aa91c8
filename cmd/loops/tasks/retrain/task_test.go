package retrain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autoserve/autoserve/cmd/loops/tasks/retrain"
	"github.com/autoserve/autoserve/pkg/domain"
	kerr "github.com/autoserve/autoserve/pkg/domain/errors"
	metricmock "github.com/autoserve/autoserve/pkg/domain/metric/db/mock"
	modelmock "github.com/autoserve/autoserve/pkg/domain/model/db/mock"
	servicemock "github.com/autoserve/autoserve/pkg/domain/service/db/mock"
)

// trainingRecords generates a window of records consistent with the
// default load score weights, enough for a fit.
func trainingRecords(service string) []domain.MetricRecord {
	records := []domain.MetricRecord{}
	for cpu := 10.0; cpu <= 90; cpu += 20 {
		for mem := 10.0; mem <= 90; mem += 40 {
			for rate := 0.0; rate <= 8000; rate += 4000 {
				load := 0.3*cpu + 0.3*mem + 0.4*(rate/100)
				replicas := int(1 + load/100*9 + 0.5)
				records = append(records, domain.MetricRecord{
					Snapshot: domain.MetricSnapshot{
						ServiceName: service,
						CPUUsage:    cpu, MemoryUsage: mem, RequestRate: rate,
					},
					Replicas: replicas,
				})
			}
		}
	}
	return records
}

// overloadedRecords appends snapshots far beyond the linear range,
// all clamped to the replica ceiling. A least-squares refit over them
// flattens its slope and loses to the default weights, which predict
// every record of the combined window exactly.
func overloadedRecords(service string) []domain.MetricRecord {
	records := trainingRecords(service)
	for _, usage := range []float64{300, 400, 500} {
		records = append(records, domain.MetricRecord{
			Snapshot: domain.MetricSnapshot{
				ServiceName: service,
				CPUUsage:    usage, MemoryUsage: usage,
			},
			Replicas: 10,
		})
	}
	return records
}

func TestRetrainTask(t *testing.T) {
	theService := domain.Service{
		Name: "fake-service", Namespace: "fake-ns",
		MinReplicas: 1, MaxReplicas: 10, Enabled: true,
	}

	newMocks := func() (
		*servicemock.MockServiceInterface,
		*metricmock.MockMetricInterface,
		*modelmock.MockModelInterface,
	) {
		services := servicemock.NewMockServiceInterface()
		services.Impl.ListEnabled = func(context.Context) ([]domain.Service, error) {
			return []domain.Service{theService}, nil
		}
		metricdb := metricmock.NewMockMetricInterface()
		models := modelmock.NewMockModelInterface()
		return services, metricdb, models
	}

	t.Run("with enough records, it fits, saves and activates a new model", func(t *testing.T) {
		services, metricdb, models := newMocks()

		metricdb.Impl.Window = func(ctx context.Context, service string, since time.Time) ([]domain.MetricRecord, error) {
			return trainingRecords(service), nil
		}
		models.Impl.Active = func(context.Context) (domain.ScalingModel, error) {
			return domain.ScalingModel{ID: 7, Name: retrain.ModelName, Version: 3, Active: true}, nil
		}

		saved := []domain.ScalingModel{}
		models.Impl.Save = func(ctx context.Context, m domain.ScalingModel) (domain.ScalingModel, error) {
			m.ID = 8
			saved = append(saved, m)
			return m, nil
		}
		activated := []int{}
		models.Impl.Activate = func(ctx context.Context, id int) error {
			activated = append(activated, id)
			return nil
		}

		testee := retrain.Task(services, metricdb, models, 24*time.Hour, 1, 10)
		_, ok, err := testee(context.Background(), retrain.Seed())

		if ok || err != nil {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, nil)
		}
		if len(saved) != 1 {
			t.Fatalf("saved %d models, want 1", len(saved))
		}
		if saved[0].Name != retrain.ModelName || saved[0].Version != 4 {
			t.Errorf("unexpected model: name = %s, version = %d", saved[0].Name, saved[0].Version)
		}
		if len(activated) != 1 || activated[0] != 8 {
			t.Errorf("activated = %v, want [8]", activated)
		}
	})

	t.Run("when the refit regresses, it is saved but the active model stays", func(t *testing.T) {
		services, metricdb, models := newMocks()

		metricdb.Impl.Window = func(ctx context.Context, service string, since time.Time) ([]domain.MetricRecord, error) {
			return overloadedRecords(service), nil
		}
		models.Impl.Active = func(context.Context) (domain.ScalingModel, error) {
			return domain.ScalingModel{
				ID: 7, Name: retrain.ModelName, Version: 3,
				Weights: domain.DefaultWeights, Active: true,
			}, nil
		}

		saved := []domain.ScalingModel{}
		models.Impl.Save = func(ctx context.Context, m domain.ScalingModel) (domain.ScalingModel, error) {
			m.ID = 8
			saved = append(saved, m)
			return m, nil
		}
		// Activate is left unset. activating a regressed model would fail the task.

		testee := retrain.Task(services, metricdb, models, 24*time.Hour, 1, 10)
		_, ok, err := testee(context.Background(), retrain.Seed())

		if ok || err != nil {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, nil)
		}
		if len(saved) != 1 {
			t.Fatalf("saved %d models, want 1", len(saved))
		}
		if saved[0].MAE <= 0 {
			t.Errorf("the refit should not be error-free here, but MAE = %f", saved[0].MAE)
		}
	})

	t.Run("with no active model yet, the new model is version 1", func(t *testing.T) {
		services, metricdb, models := newMocks()

		metricdb.Impl.Window = func(ctx context.Context, service string, since time.Time) ([]domain.MetricRecord, error) {
			return trainingRecords(service), nil
		}
		models.Impl.Active = func(context.Context) (domain.ScalingModel, error) {
			return domain.ScalingModel{}, kerr.Missing{Table: "ml_models", Identity: "(active)"}
		}
		models.Impl.Save = func(ctx context.Context, m domain.ScalingModel) (domain.ScalingModel, error) {
			if m.Version != 1 {
				t.Errorf("version = %d, want 1", m.Version)
			}
			m.ID = 1
			return m, nil
		}
		models.Impl.Activate = func(context.Context, int) error { return nil }

		testee := retrain.Task(services, metricdb, models, 24*time.Hour, 1, 10)
		if _, _, err := testee(context.Background(), retrain.Seed()); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("with too few records, it leaves the active model alone", func(t *testing.T) {
		services, metricdb, models := newMocks()

		metricdb.Impl.Window = func(ctx context.Context, service string, since time.Time) ([]domain.MetricRecord, error) {
			return trainingRecords(service)[:3], nil
		}
		models.Impl.Active = func(context.Context) (domain.ScalingModel, error) {
			return domain.ScalingModel{ID: 7, Version: 3, Active: true}, nil
		}
		// Save and Activate are left unset. reaching them would fail the task.

		testee := retrain.Task(services, metricdb, models, 24*time.Hour, 1, 10)
		_, ok, err := testee(context.Background(), retrain.Seed())

		if ok || err != nil {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, nil)
		}
	})

	t.Run("when reading the window fails, it makes error", func(t *testing.T) {
		services, metricdb, models := newMocks()

		expectedError := errors.New("fake error")
		metricdb.Impl.Window = func(context.Context, string, time.Time) ([]domain.MetricRecord, error) {
			return nil, expectedError
		}

		testee := retrain.Task(services, metricdb, models, 24*time.Hour, 1, 10)
		_, ok, err := testee(context.Background(), retrain.Seed())

		if ok || !errors.Is(err, expectedError) {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, expectedError)
		}
	})
}
