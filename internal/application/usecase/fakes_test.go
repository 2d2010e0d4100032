package usecase_test

import (
	"context"
	"strings"
	"time"

	"github.com/ittest-team/device-accounting/internal/application/audit"
	"github.com/ittest-team/device-accounting/internal/application/deletion"
	"github.com/ittest-team/device-accounting/internal/domain"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
	"github.com/ittest-team/device-accounting/pkg/logger"
)

// Фейки репозиториев в памяти: достаточно честные для сценариев usecase'ов,
// без SQL. Мягкое удаление — отметка DeletedAt, физическое — удаление из map.

// ──────────────────────────────────────────────────────────────────────────────
// Аудит, транзакции, уведомления
// ──────────────────────────────────────────────────────────────────────────────

type memAuditRepo struct {
	logs      []*entity.AuditLog
	createErr error // если задана — Create падает с этой ошибкой
}

func (r *memAuditRepo) Create(_ context.Context, log *entity.AuditLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	log.ID = int64(len(r.logs) + 1)
	log.CreatedAt = time.Now().UTC()
	r.logs = append(r.logs, log)
	return nil
}

func (r *memAuditRepo) Query(_ context.Context, f repository.AuditFilter) ([]*entity.AuditLog, error) {
	out := make([]*entity.AuditLog, 0, len(r.logs))
	for i := len(r.logs) - 1; i >= 0; i-- {
		l := r.logs[i]
		if f.EntityType != "" && l.EntityType != f.EntityType {
			continue
		}
		if f.EntityID != 0 && (l.EntityID == nil || *l.EntityID != f.EntityID) {
			continue
		}
		out = append(out, l)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

// byAction возвращает записи с данным действием.
func (r *memAuditRepo) byAction(a entity.AuditAction) []*entity.AuditLog {
	var out []*entity.AuditLog
	for _, l := range r.logs {
		if l.Action == a {
			out = append(out, l)
		}
	}
	return out
}

type fakeTxRunner struct {
	stores deletion.Stores
	audits *memAuditRepo
}

func (t *fakeTxRunner) RunDeletion(_ context.Context, fn func(deletion.Stores, repository.AuditLogRepository) error) error {
	return fn(t.stores, t.audits)
}

type stubNotifier struct {
	calls int
}

func (n *stubNotifier) NotifyDeletion(_ context.Context, _ entity.EntityType, _, _ string, _ bool) bool {
	n.calls++
	return true
}

// ──────────────────────────────────────────────────────────────────────────────
// Локации
// ──────────────────────────────────────────────────────────────────────────────

type memLocationRepo struct {
	seq  int64
	rows map[int64]*entity.Location
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{rows: make(map[int64]*entity.Location)}
}

func (r *memLocationRepo) Create(_ context.Context, l *entity.Location) error {
	r.seq++
	l.ID = r.seq
	cp := *l
	r.rows[l.ID] = &cp
	return nil
}

func (r *memLocationRepo) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	l, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *memLocationRepo) GetByName(_ context.Context, name string) (*entity.Location, error) {
	for _, l := range r.rows {
		if l.DeletedAt == nil && l.Name == name {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLocationRepo) Update(_ context.Context, l *entity.Location) error {
	if _, ok := r.rows[l.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *l
	r.rows[l.ID] = &cp
	return nil
}

func (r *memLocationRepo) ListActive(_ context.Context) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.rows {
		if l.DeletedAt == nil {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLocationRepo) ListDeleted(_ context.Context) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.rows {
		if l.DeletedAt != nil {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLocationRepo) SoftDelete(_ context.Context, id int64, deletedAt time.Time) error {
	l, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.DeletedAt = &deletedAt
	return nil
}

func (r *memLocationRepo) HardDelete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memLocationRepo) Restore(_ context.Context, id int64) error {
	l, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.DeletedAt = nil
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Склады
// ──────────────────────────────────────────────────────────────────────────────

type memWarehouseRepo struct {
	seq  int64
	rows map[int64]*entity.Warehouse
}

func newMemWarehouseRepo() *memWarehouseRepo {
	return &memWarehouseRepo{rows: make(map[int64]*entity.Warehouse)}
}

func (r *memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.seq++
	w.ID = r.seq
	cp := *w
	r.rows[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	w, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *memWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	if _, ok := r.rows[w.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *w
	r.rows[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) ListActive(_ context.Context) ([]*entity.WarehouseWithCount, error) {
	var out []*entity.WarehouseWithCount
	for _, w := range r.rows {
		if w.DeletedAt == nil {
			out = append(out, &entity.WarehouseWithCount{Warehouse: *w})
		}
	}
	return out, nil
}

func (r *memWarehouseRepo) ListDeleted(_ context.Context) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.rows {
		if w.DeletedAt != nil {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memWarehouseRepo) SoftDelete(_ context.Context, id int64, deletedAt time.Time) error {
	w, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	w.DeletedAt = &deletedAt
	return nil
}

func (r *memWarehouseRepo) HardDelete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memWarehouseRepo) Restore(_ context.Context, id int64) error {
	w, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	w.DeletedAt = nil
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Сотрудники
// ──────────────────────────────────────────────────────────────────────────────

type memEmployeeRepo struct {
	seq  int64
	rows map[int64]*entity.Employee
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{rows: make(map[int64]*entity.Employee)}
}

func (r *memEmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	r.seq++
	e.ID = r.seq
	cp := *e
	r.rows[e.ID] = &cp
	return nil
}

func (r *memEmployeeRepo) GetByID(_ context.Context, id int64) (*entity.Employee, error) {
	e, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memEmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	if _, ok := r.rows[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	r.rows[e.ID] = &cp
	return nil
}

func (r *memEmployeeRepo) ListActive(_ context.Context) ([]*entity.EmployeeWithCount, error) {
	var out []*entity.EmployeeWithCount
	for _, e := range r.rows {
		if e.DeletedAt == nil {
			out = append(out, &entity.EmployeeWithCount{Employee: *e})
		}
	}
	return out, nil
}

func (r *memEmployeeRepo) ListDeleted(_ context.Context) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range r.rows {
		if e.DeletedAt != nil {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memEmployeeRepo) ExistsName(_ context.Context, firstName, lastName, middleName string, excludeID int64) (bool, error) {
	for _, e := range r.rows {
		if e.ID == excludeID || e.DeletedAt != nil {
			continue
		}
		if strings.EqualFold(e.FirstName, firstName) &&
			strings.EqualFold(e.LastName, lastName) &&
			strings.EqualFold(e.MiddleName, middleName) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memEmployeeRepo) ExistsEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	if email == "" {
		return false, nil
	}
	for _, e := range r.rows {
		if e.ID != excludeID && e.DeletedAt == nil && strings.EqualFold(e.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memEmployeeRepo) ExistsPhone(_ context.Context, phone string, excludeID int64) (bool, error) {
	if phone == "" {
		return false, nil
	}
	for _, e := range r.rows {
		if e.ID != excludeID && e.DeletedAt == nil && e.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *memEmployeeRepo) ExistsTelegram(_ context.Context, telegram string, excludeID int64) (bool, error) {
	if telegram == "" {
		return false, nil
	}
	for _, e := range r.rows {
		if e.ID != excludeID && e.DeletedAt == nil && strings.EqualFold(e.Telegram, telegram) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memEmployeeRepo) CountActiveByLocation(_ context.Context, locationID int64) (int, error) {
	count := 0
	for _, e := range r.rows {
		if e.DeletedAt == nil && e.LocationID == locationID {
			count++
		}
	}
	return count, nil
}

func (r *memEmployeeRepo) SoftDelete(_ context.Context, id int64, deletedAt time.Time) error {
	e, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.DeletedAt = &deletedAt
	return nil
}

func (r *memEmployeeRepo) HardDelete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memEmployeeRepo) Restore(_ context.Context, id int64) error {
	e, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.DeletedAt = nil
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Пользователи
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	seq  int64
	rows map[int64]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{rows: make(map[int64]*entity.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.seq++
	u.ID = r.seq
	cp := *u
	r.rows[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.rows {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.rows[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	r.rows[u.ID] = &cp
	return nil
}

func (r *memUserRepo) ListActive(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.rows {
		if u.DeletedAt == nil {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListDeleted(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.rows {
		if u.DeletedAt != nil {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUserRepo) FirstSuperAdmin(_ context.Context) (*entity.User, error) {
	for _, u := range r.rows {
		if u.DeletedAt == nil && u.IsActive && u.Role.IsSuperAdmin() {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) SoftDelete(_ context.Context, id int64, deletedAt time.Time) error {
	u, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.DeletedAt = &deletedAt
	return nil
}

func (r *memUserRepo) HardDelete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memUserRepo) Restore(_ context.Context, id int64) error {
	u, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.DeletedAt = nil
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Типы девайсов
// ──────────────────────────────────────────────────────────────────────────────

type memDeviceTypeRepo struct {
	seq  int64
	rows map[int64]*entity.DeviceType
}

func newMemDeviceTypeRepo() *memDeviceTypeRepo {
	return &memDeviceTypeRepo{rows: make(map[int64]*entity.DeviceType)}
}

func (r *memDeviceTypeRepo) Create(_ context.Context, t *entity.DeviceType) error {
	r.seq++
	t.ID = r.seq
	cp := *t
	r.rows[t.ID] = &cp
	return nil
}

func (r *memDeviceTypeRepo) GetByID(_ context.Context, id int64) (*entity.DeviceType, error) {
	t, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memDeviceTypeRepo) Update(_ context.Context, t *entity.DeviceType) error {
	if _, ok := r.rows[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	r.rows[t.ID] = &cp
	return nil
}

func (r *memDeviceTypeRepo) ListActive(_ context.Context) ([]*entity.DeviceTypeWithCount, error) {
	var out []*entity.DeviceTypeWithCount
	for _, t := range r.rows {
		if t.DeletedAt == nil {
			out = append(out, &entity.DeviceTypeWithCount{DeviceType: *t})
		}
	}
	return out, nil
}

func (r *memDeviceTypeRepo) ListDeleted(_ context.Context) ([]*entity.DeviceType, error) {
	var out []*entity.DeviceType
	for _, t := range r.rows {
		if t.DeletedAt != nil {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memDeviceTypeRepo) SoftDelete(_ context.Context, id int64, deletedAt time.Time) error {
	t, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.DeletedAt = &deletedAt
	return nil
}

func (r *memDeviceTypeRepo) HardDelete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memDeviceTypeRepo) Restore(_ context.Context, id int64) error {
	t, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.DeletedAt = nil
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Девайсы
// ──────────────────────────────────────────────────────────────────────────────

type memDeviceRepo struct {
	seq  int64
	rows map[int64]*entity.Device
}

func newMemDeviceRepo() *memDeviceRepo {
	return &memDeviceRepo{rows: make(map[int64]*entity.Device)}
}

func (r *memDeviceRepo) Create(_ context.Context, d *entity.Device) error {
	r.seq++
	d.ID = r.seq
	cp := *d
	r.rows[d.ID] = &cp
	return nil
}

func (r *memDeviceRepo) GetByID(_ context.Context, id int64) (*entity.Device, error) {
	d, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *memDeviceRepo) Update(_ context.Context, d *entity.Device) error {
	if _, ok := r.rows[d.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *d
	r.rows[d.ID] = &cp
	return nil
}

func (r *memDeviceRepo) ListActive(_ context.Context) ([]*entity.DeviceDetails, error) {
	var out []*entity.DeviceDetails
	for _, d := range r.rows {
		if d.DeletedAt == nil {
			out = append(out, &entity.DeviceDetails{Device: *d})
		}
	}
	return out, nil
}

func (r *memDeviceRepo) ListDeleted(_ context.Context) ([]*entity.Device, error) {
	var out []*entity.Device
	for _, d := range r.rows {
		if d.DeletedAt != nil {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memDeviceRepo) CountActiveByType(_ context.Context, typeID int64) (int, error) {
	count := 0
	for _, d := range r.rows {
		if d.DeletedAt == nil && d.TypeID == typeID {
			count++
		}
	}
	return count, nil
}

func (r *memDeviceRepo) CountActiveByWarehouse(_ context.Context, warehouseID int64) (int, error) {
	count := 0
	for _, d := range r.rows {
		if d.DeletedAt == nil && d.WarehouseID != nil && *d.WarehouseID == warehouseID {
			count++
		}
	}
	return count, nil
}

func (r *memDeviceRepo) CountActiveByLocation(_ context.Context, locationID int64) (int, error) {
	count := 0
	for _, d := range r.rows {
		if d.DeletedAt == nil && d.LocationID != nil && *d.LocationID == locationID {
			count++
		}
	}
	return count, nil
}

func (r *memDeviceRepo) CountActiveByOwner(_ context.Context, ownerID int64) (int, error) {
	count := 0
	for _, d := range r.rows {
		if d.DeletedAt == nil && d.OwnerID != nil && *d.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (r *memDeviceRepo) CountActiveByStatus(_ context.Context) (map[string]int, error) {
	out := make(map[string]int)
	for _, d := range r.rows {
		if d.DeletedAt == nil {
			out[d.Status]++
		}
	}
	return out, nil
}

func (r *memDeviceRepo) SoftDelete(_ context.Context, id int64, deletedAt time.Time) error {
	d, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.DeletedAt = &deletedAt
	return nil
}

func (r *memDeviceRepo) HardDelete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memDeviceRepo) Restore(_ context.Context, id int64) error {
	d, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.DeletedAt = nil
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// История девайсов
// ──────────────────────────────────────────────────────────────────────────────

type memHistoryRepo struct {
	rows      []*entity.DeviceHistory
	createErr error
}

func (r *memHistoryRepo) Create(_ context.Context, rec *entity.DeviceHistory) error {
	if r.createErr != nil {
		return r.createErr
	}
	rec.ID = int64(len(r.rows) + 1)
	rec.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, rec)
	return nil
}

func (r *memHistoryRepo) ListByDevice(_ context.Context, deviceID int64) ([]*entity.DeviceHistory, error) {
	var out []*entity.DeviceHistory
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].DeviceID == deviceID {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Сборка окружения
// ──────────────────────────────────────────────────────────────────────────────

// env — полный набор фейков и сервисов для тестов usecase'ов.
type env struct {
	locations  *memLocationRepo
	warehouses *memWarehouseRepo
	employees  *memEmployeeRepo
	users      *memUserRepo
	types      *memDeviceTypeRepo
	devices    *memDeviceRepo
	history    *memHistoryRepo
	audits     *memAuditRepo
	notifier   *stubNotifier

	auditSvc    *audit.Service
	deletionSvc *deletion.Service
}

func newEnv() *env {
	e := &env{
		locations:  newMemLocationRepo(),
		warehouses: newMemWarehouseRepo(),
		employees:  newMemEmployeeRepo(),
		users:      newMemUserRepo(),
		types:      newMemDeviceTypeRepo(),
		devices:    newMemDeviceRepo(),
		history:    &memHistoryRepo{},
		audits:     &memAuditRepo{},
		notifier:   &stubNotifier{},
	}
	tx := &fakeTxRunner{
		stores: deletion.Stores{
			entity.EntityDevice:     e.devices,
			entity.EntityEmployee:   e.employees,
			entity.EntityWarehouse:  e.warehouses,
			entity.EntityLocation:   e.locations,
			entity.EntityDeviceType: e.types,
			entity.EntityUser:       e.users,
		},
		audits: e.audits,
	}
	e.auditSvc = audit.NewService(e.audits, logger.Nop())
	e.deletionSvc = deletion.NewService(tx, e.auditSvc, e.notifier, logger.Nop())
	return e
}

func (e *env) admin() *audit.Actor {
	return &audit.Actor{ID: 2, Email: "admin@ittest-team.ru", Role: entity.RoleAdmin, IP: "10.0.0.2"}
}

func (e *env) superAdmin() *audit.Actor {
	return &audit.Actor{ID: 1, Email: "root@ittest-team.ru", Role: entity.RoleSuperAdmin, IP: "10.0.0.1"}
}

func ptr[T any](v T) *T { return &v }
