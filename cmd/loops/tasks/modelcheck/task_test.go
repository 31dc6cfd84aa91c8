package modelcheck_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autoserve/autoserve/cmd/loops/tasks/modelcheck"
	"github.com/autoserve/autoserve/pkg/domain"
	kerr "github.com/autoserve/autoserve/pkg/domain/errors"
	modelmock "github.com/autoserve/autoserve/pkg/domain/model/db/mock"
	scalingmock "github.com/autoserve/autoserve/pkg/domain/scaling/db/mock"
	scalermock "github.com/autoserve/autoserve/pkg/domain/scaling/k8s/mock"
	servicemock "github.com/autoserve/autoserve/pkg/domain/service/db/mock"
)

func TestModelCheckTask(t *testing.T) {
	newMocks := func(enabled ...domain.Service) (
		*servicemock.MockServiceInterface,
		*scalingmock.MockScalingInterface,
		*modelmock.MockModelInterface,
		*scalermock.MockScaler,
	) {
		services := servicemock.NewMockServiceInterface()
		services.Impl.ListEnabled = func(context.Context) ([]domain.Service, error) {
			return enabled, nil
		}
		return services,
			scalingmock.NewMockScalingInterface(),
			modelmock.NewMockModelInterface(),
			scalermock.NewMockScaler()
	}

	t.Run("when no model is active, it bootstraps the baseline", func(t *testing.T) {
		services, scalingdb, models, cluster := newMocks()
		models.Impl.Active = func(context.Context) (domain.ScalingModel, error) {
			return domain.ScalingModel{}, kerr.Missing{Table: "ml_models", Identity: "(active)"}
		}

		saved := []domain.ScalingModel{}
		models.Impl.Save = func(ctx context.Context, m domain.ScalingModel) (domain.ScalingModel, error) {
			m.ID = 1
			saved = append(saved, m)
			return m, nil
		}
		activated := []int{}
		models.Impl.Activate = func(ctx context.Context, id int) error {
			activated = append(activated, id)
			return nil
		}

		testee := modelcheck.Task(services, scalingdb, models, cluster, modelcheck.DefaultWindow)
		_, ok, err := testee(context.Background(), modelcheck.Seed())

		if ok || err != nil {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, nil)
		}
		if len(saved) != 1 {
			t.Fatalf("saved %d models, want 1", len(saved))
		}
		if saved[0].Name != modelcheck.BaselineName || saved[0].Weights != domain.DefaultWeights {
			t.Errorf("unexpected model: %+v", saved[0])
		}
		if len(activated) != 1 || activated[0] != 1 {
			t.Errorf("activated = %v, want [1]", activated)
		}
	})

	t.Run("without executed recommendations, it leaves the accuracy alone", func(t *testing.T) {
		services, scalingdb, models, cluster := newMocks(
			domain.Service{Name: "fake-service", Namespace: "fake-ns", Enabled: true},
		)
		models.Impl.Active = func(context.Context) (domain.ScalingModel, error) {
			return domain.ScalingModel{ID: 1, Name: "fake-model", Version: 2, Active: true}, nil
		}
		scalingdb.Impl.ExecutedSince = func(context.Context, string, time.Time) ([]domain.ScalingEvent, error) {
			return []domain.ScalingEvent{}, nil
		}
		// UpdateAccuracy is left unset. reaching it would fail the task.

		testee := modelcheck.Task(services, scalingdb, models, cluster, modelcheck.DefaultWindow)
		_, ok, err := testee(context.Background(), modelcheck.Seed())

		if ok || err != nil {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, nil)
		}
	})

	t.Run("it scores the latest recommendation of each service against the cluster", func(t *testing.T) {
		services, scalingdb, models, cluster := newMocks(
			domain.Service{Name: "service-a", Namespace: "fake-ns", Enabled: true},
			domain.Service{Name: "service-b", Namespace: "fake-ns", Enabled: true},
		)
		models.Impl.Active = func(context.Context) (domain.ScalingModel, error) {
			return domain.ScalingModel{ID: 3, Name: "fake-model", Version: 2, Active: true}, nil
		}
		scalingdb.Impl.ExecutedSince = func(ctx context.Context, service string, since time.Time) ([]domain.ScalingEvent, error) {
			return []domain.ScalingEvent{
				{ServiceName: service, NewReplicas: 5, Executed: true},
				{ServiceName: service, NewReplicas: 9, Executed: true},
			}, nil
		}
		cluster.Impl.CurrentReplicas = func(ctx context.Context, namespace string, name string) (int, error) {
			if name == "service-a" {
				return 5, nil // settled on what was recommended
			}
			return 2, nil // drifted away since
		}

		updated := map[int]float64{}
		models.Impl.UpdateAccuracy = func(ctx context.Context, id int, accuracy float64) error {
			updated[id] = accuracy
			return nil
		}

		testee := modelcheck.Task(services, scalingdb, models, cluster, modelcheck.DefaultWindow)
		_, ok, err := testee(context.Background(), modelcheck.Seed())

		if ok || err != nil {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, nil)
		}
		if accuracy, found := updated[3]; !found || accuracy != 0.5 {
			t.Errorf("updated = %v, want accuracy 0.5 for model 3", updated)
		}
	})

	t.Run("it folds the measurement into the running accuracy", func(t *testing.T) {
		services, scalingdb, models, cluster := newMocks(
			domain.Service{Name: "fake-service", Namespace: "fake-ns", Enabled: true},
		)
		models.Impl.Active = func(context.Context) (domain.ScalingModel, error) {
			return domain.ScalingModel{ID: 3, Version: 2, Accuracy: 0.9, Active: true}, nil
		}
		scalingdb.Impl.ExecutedSince = func(ctx context.Context, service string, since time.Time) ([]domain.ScalingEvent, error) {
			return []domain.ScalingEvent{{ServiceName: service, NewReplicas: 4, Executed: true}}, nil
		}
		cluster.Impl.CurrentReplicas = func(context.Context, string, string) (int, error) {
			return 4, nil
		}

		updated := map[int]float64{}
		models.Impl.UpdateAccuracy = func(ctx context.Context, id int, accuracy float64) error {
			updated[id] = accuracy
			return nil
		}

		testee := modelcheck.Task(services, scalingdb, models, cluster, modelcheck.DefaultWindow)
		if _, _, err := testee(context.Background(), modelcheck.Seed()); err != nil {
			t.Fatal(err)
		}
		if accuracy := updated[3]; accuracy != 0.95 {
			t.Errorf("accuracy = %f, want 0.95", accuracy)
		}
	})

	t.Run("when the deployment is missing, it skips the service", func(t *testing.T) {
		services, scalingdb, models, cluster := newMocks(
			domain.Service{Name: "fake-service", Namespace: "fake-ns", Enabled: true},
		)
		models.Impl.Active = func(context.Context) (domain.ScalingModel, error) {
			return domain.ScalingModel{ID: 3, Version: 2, Active: true}, nil
		}
		scalingdb.Impl.ExecutedSince = func(ctx context.Context, service string, since time.Time) ([]domain.ScalingEvent, error) {
			return []domain.ScalingEvent{{ServiceName: service, NewReplicas: 4, Executed: true}}, nil
		}
		cluster.Impl.CurrentReplicas = func(context.Context, string, string) (int, error) {
			return 0, kerr.Missing{Table: "deployments", Identity: "fake-ns/fake-service"}
		}
		// UpdateAccuracy is left unset. reaching it would fail the task.

		testee := modelcheck.Task(services, scalingdb, models, cluster, modelcheck.DefaultWindow)
		_, ok, err := testee(context.Background(), modelcheck.Seed())

		if ok || err != nil {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, nil)
		}
	})

	t.Run("when reading the active model fails, it makes error", func(t *testing.T) {
		services, scalingdb, models, cluster := newMocks()
		expectedError := errors.New("fake error")
		models.Impl.Active = func(context.Context) (domain.ScalingModel, error) {
			return domain.ScalingModel{}, expectedError
		}

		testee := modelcheck.Task(services, scalingdb, models, cluster, modelcheck.DefaultWindow)
		_, ok, err := testee(context.Background(), modelcheck.Seed())

		if ok || !errors.Is(err, expectedError) {
			t.Errorf("(ok, err) = (%v, %v), want (%v, %v)", ok, err, false, expectedError)
		}
	})
}
