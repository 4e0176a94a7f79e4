package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"alphafarm/entities"
	"alphafarm/pkg/admin/repository"
	"alphafarm/pkg/admin/service"
	"alphafarm/pkg/event"
	landrepo "alphafarm/pkg/land/repository"
	"alphafarm/pkg/metrics"
	planrepo "alphafarm/pkg/plan/repository"
	planservice "alphafarm/pkg/plan/service"
)

const pendingFarmersLimit = 10

type adminSvc struct {
	repo    repository.AdminRepository
	lands   landrepo.LandRepository
	plans   planrepo.PlanRepository
	events  event.Publisher
	metrics *metrics.Metrics
	log     *zap.Logger
	now     func() time.Time
}

func NewAdminService(repo repository.AdminRepository, lr landrepo.LandRepository, pr planrepo.PlanRepository,
	pub event.Publisher, m *metrics.Metrics, log *zap.Logger) service.AdminService {
	return &adminSvc{repo: repo, lands: lr, plans: pr, events: pub, metrics: m, log: log, now: time.Now}
}

func (s *adminSvc) Dashboard(ctx context.Context) (*service.Dashboard, error) {
	d := &service.Dashboard{ChartLabels: []string{}, ChartValues: []int64{}}
	var byStatus map[string]int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.TotalUsers, err = s.repo.CountAccounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.TotalFarmers, d.ProfilesCompleted, err = s.repo.FarmerStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.FarmersByDistrict, err = s.repo.FarmersByDistrict(gctx)
		return err
	})
	g.Go(func() (err error) {
		byStatus, err = s.repo.LandStatusCounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.PendingFarmers, err = s.repo.PendingFarmers(gctx, pendingFarmersLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	for _, row := range d.FarmersByDistrict {
		label := row.District
		if label == "" {
			label = "Unknown"
		}
		d.ChartLabels = append(d.ChartLabels, label)
		d.ChartValues = append(d.ChartValues, row.Count)
	}
	d.LandApprovalSummary = map[string]int64{"Pending": 0, "Approved": 0, "Rejected": 0}
	for status, n := range byStatus {
		switch status {
		case entities.StatusApproved:
			d.LandApprovalSummary["Approved"] += n
		case entities.StatusRejected:
			d.LandApprovalSummary["Rejected"] += n
		default:
			d.LandApprovalSummary["Pending"] += n
		}
	}
	return d, nil
}

func statusFilter(s string) string {
	if entities.ValidStatus(s) {
		return s
	}
	return ""
}

func (s *adminSvc) Lands(ctx context.Context, status string) ([]service.LandApproval, error) {
	lands, err := s.lands.ListByStatus(ctx, statusFilter(status))
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(lands))
	for _, l := range lands {
		ids = append(ids, l.FarmerID)
	}
	farmers, err := s.repo.FarmersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]service.LandApproval, 0, len(lands))
	for _, l := range lands {
		f := farmers[l.FarmerID]
		out = append(out, service.LandApproval{
			ID: l.LandID, FarmerName: f.Name, FarmerPhone: f.Phone,
			Village: l.Village, District: l.District, State: l.State, LandArea: l.LandArea,
			ApprovalStatus: orPending(l.ApprovalStatus), AdminRemark: l.AdminRemark,
		})
	}
	return out, nil
}

func orPending(s string) string {
	if s == "" {
		return entities.StatusPending
	}
	return s
}

func (s *adminSvc) DecideLand(ctx context.Context, adminID, landID uint, d service.Decision) (*service.DecisionResult, error) {
	if d.ApprovalStatus != "" && !entities.ValidStatus(d.ApprovalStatus) {
		return nil, service.ErrInvalidStatus
	}
	land, err := s.lands.Get(ctx, landID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrLandNotFound
	}
	if err != nil {
		return nil, err
	}
	if d.ApprovalStatus != "" {
		land.ApprovalStatus = d.ApprovalStatus
	}
	if d.AdminRemark != nil {
		land.AdminRemark = *d.AdminRemark
	}
	if err := s.lands.Save(ctx, land); err != nil {
		return nil, err
	}
	s.decided(ctx, event.Approval{
		Kind: event.KindLand, ID: land.LandID, FarmerID: land.FarmerID,
		Status: land.ApprovalStatus, Remark: land.AdminRemark, DecidedBy: adminID,
	})
	if err := s.syncFarmer(ctx, adminID, land.FarmerID); err != nil {
		return nil, err
	}
	return &service.DecisionResult{
		Message: "Land approval updated", ApprovalStatus: land.ApprovalStatus, AdminRemark: land.AdminRemark,
	}, nil
}

// syncFarmer derives the farmer's status from their lands: any pending land
// keeps the farmer pending, all approved approves them, anything else rejects.
func (s *adminSvc) syncFarmer(ctx context.Context, adminID, farmerID uint) error {
	lands, err := s.lands.ListByFarmer(ctx, farmerID, false)
	if err != nil || len(lands) == 0 {
		return err
	}
	status := entities.StatusApproved
	for _, l := range lands {
		st := orPending(l.ApprovalStatus)
		if st == entities.StatusPending {
			status = entities.StatusPending
			break
		}
		if st != entities.StatusApproved {
			status = entities.StatusRejected
		}
	}
	if err := s.repo.SetFarmerStatus(ctx, farmerID, status); err != nil {
		return fmt.Errorf("sync farmer %d: %w", farmerID, err)
	}
	s.publish(ctx, event.Approval{Kind: event.KindFarmer, ID: farmerID, FarmerID: farmerID, Status: status, DecidedBy: adminID})
	return nil
}

func (s *adminSvc) CropPlans(ctx context.Context, status string) ([]service.PlanApproval, error) {
	plans, err := s.plans.ListByStatus(ctx, statusFilter(status))
	if err != nil {
		return nil, err
	}
	farmerIDs := make([]uint, 0, len(plans))
	landIDs := make([]uint, 0, len(plans))
	for _, p := range plans {
		farmerIDs = append(farmerIDs, p.FarmerID)
		landIDs = append(landIDs, p.LandID)
	}
	farmers, err := s.repo.FarmersByIDs(ctx, farmerIDs)
	if err != nil {
		return nil, err
	}
	lands, err := s.repo.LandsByIDs(ctx, landIDs)
	if err != nil {
		return nil, err
	}

	out := make([]service.PlanApproval, 0, len(plans))
	for _, p := range plans {
		f, l := farmers[p.FarmerID], lands[p.LandID]
		out = append(out, service.PlanApproval{
			ID: p.PlanID, FarmerName: f.Name, FarmerPhone: f.Phone,
			Village: l.Village, District: l.District, State: l.State,
			CropName: CropLabel(p), Season: p.Season, PlannedArea: plannedArea(p, l),
			ApprovalStatus: orPending(p.ApprovalStatus), AdminRemark: p.AdminRemark,
		})
	}
	return out, nil
}

// CropLabel names a plan by its distinct crops: one name, or up to three
// joined with " + " and a "(+N more)" suffix.
func CropLabel(p entities.CropPlan) string {
	seen := map[string]bool{}
	var names []string
	for _, a := range p.Crops {
		if a.CropName != "" && !seen[a.CropName] {
			seen[a.CropName] = true
			names = append(names, a.CropName)
		}
	}
	sort.Strings(names)
	switch {
	case len(names) == 0:
		return fmt.Sprintf("Crop plan #%d", p.PlanID)
	case len(names) <= 3:
		return strings.Join(names, " + ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(names[:3], " + "), len(names)-3)
}

func plannedArea(p entities.CropPlan, l entities.Land) float64 {
	if p.TotalAcresAllocated > 0 {
		return p.TotalAcresAllocated
	}
	if len(p.Crops) > 0 {
		var sum float64
		for _, a := range p.Crops {
			sum += a.Acres
		}
		return sum
	}
	return l.LandArea
}

func (s *adminSvc) DecidePlan(ctx context.Context, adminID, planID uint, d service.Decision) (*service.DecisionResult, error) {
	if d.ApprovalStatus != "" && !entities.ValidStatus(d.ApprovalStatus) {
		return nil, service.ErrInvalidStatus
	}
	p, err := s.plans.Get(ctx, planID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	land, err := s.lands.Get(ctx, p.LandID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.plans.Transaction(ctx, func(tx planrepo.PlanRepository) error {
		cur, err := tx.Get(ctx, planID)
		if err != nil {
			return err
		}
		p = cur
		prev := p.ApprovalStatus
		if d.ApprovalStatus != "" {
			p.ApprovalStatus = d.ApprovalStatus
		}
		if d.AdminRemark != nil {
			p.AdminRemark = *d.AdminRemark
		}
		// a rejected plan holds no acres; taking it back has to fit again
		if land != nil && prev == entities.StatusRejected && p.ApprovalStatus != entities.StatusRejected {
			committed, err := tx.CommittedAcres(ctx, p.LandID)
			if err != nil {
				return err
			}
			if err := planservice.CheckCapacity(land.LandArea, committed, p.TotalAcresAllocated); err != nil {
				return err
			}
		}
		return tx.UpdateStatus(ctx, p.PlanID, p.ApprovalStatus, p.AdminRemark)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	s.decided(ctx, event.Approval{
		Kind: event.KindCropPlan, ID: p.PlanID, FarmerID: p.FarmerID,
		Status: p.ApprovalStatus, Remark: p.AdminRemark, DecidedBy: adminID,
	})
	return &service.DecisionResult{
		Message: "Crop plan approval updated", ApprovalStatus: p.ApprovalStatus, AdminRemark: p.AdminRemark,
	}, nil
}

func (s *adminSvc) decided(ctx context.Context, ev event.Approval) {
	s.metrics.ObserveDecision(ev.Kind, ev.Status)
	s.publish(ctx, ev)
}

// publish never fails the request; the decision is already stored.
func (s *adminSvc) publish(ctx context.Context, ev event.Approval) {
	if s.events == nil {
		return
	}
	ev.At = s.now()
	if err := s.events.PublishApproval(ctx, ev); err != nil {
		s.log.Warn("publish approval event failed",
			zap.String("kind", ev.Kind), zap.Uint("id", ev.ID), zap.Error(err))
	}
}
