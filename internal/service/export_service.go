package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"fasttrack/internal/model"
	"fasttrack/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoConnections = errors.New("暂无可导出的连接")
	ErrExportGenerateFail  = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportConnections 导出企业的连接线索，careerFairID 为空时导出全部招聘会
	ExportConnections(ctx context.Context, companyUserID, careerFairID string) (*bytes.Buffer, string, error)
	// ExportCalendar 以 iCalendar 导出连接，每条连接一个见面事件
	ExportCalendar(ctx context.Context, companyUserID, careerFairID string) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var exportStatusNames = map[model.ConnectionStatus]string{
	model.ConnectionPending:  "待确认",
	model.ConnectionAccepted: "已接受",
	model.ConnectionDeclined: "已拒绝",
}

var exportTypeNames = map[model.ConnectionType]string{
	model.ConnectionCompanyInitiated: "企业扫码",
	model.ConnectionStudentInitiated: "学生申请",
}

var exportHeaders = []string{
	"学生姓名", "邮箱", "学校", "专业", "年级", "状态", "发起方",
	"企业备注", "学生备注", "招聘会", "连接时间", "更新时间",
}

// ═══════════════════════════════════════════════════════════
// ExportConnections 导出连接线索为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单个 Sheet "连接线索"，第 1 行标题，第 2 行表头
//   - 每条连接一行，按连接时间升序
//   - 学生档案或账号缺失时对应列留空
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportConnections(ctx context.Context, companyUserID, careerFairID string) (*bytes.Buffer, string, error) {
	company, conns, err := s.collectConnections(ctx, companyUserID, careerFairID)
	if err != nil {
		return nil, "", err
	}

	// 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "连接线索"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "C", 18)
	f.SetColWidth(sheetName, "D", "G", 12)
	f.SetColWidth(sheetName, "H", "I", 36)
	f.SetColWidth(sheetName, "J", "L", 20)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	title := company.Name + " 连接线索"
	if careerFairID != "" {
		title += fmt.Sprintf("（%s）", careerFairID)
	}
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", cell(colName(len(exportHeaders)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	for i, h := range exportHeaders {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(exportHeaders)-1), 2), headerStyle)

	// 数据行
	row := 3
	for _, conn := range conns {
		values, err := s.rowValues(ctx, conn)
		if err != nil {
			return nil, "", err
		}
		for i, v := range values {
			f.SetCellValue(sheetName, cell(colName(i), row), v)
		}
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("连接线索_%s.xlsx", company.Name)
	if careerFairID != "" {
		filename = fmt.Sprintf("连接线索_%s_%s.xlsx", company.Name, careerFairID)
	}
	s.logger.Info("导出连接线索", zap.String("company_id", company.ID), zap.Int("rows", len(conns)))
	return buf, filename, nil
}

// collectConnections 企业的连接，按招聘会过滤后按连接时间升序
func (s *exportService) collectConnections(ctx context.Context, companyUserID, careerFairID string) (*model.Company, []*model.Connection, error) {
	company, err := s.repo.Company.GetByOwner(ctx, companyUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrCompanyProfileRequired
		}
		s.logger.Error("查询企业失败", zap.String("owner_id", companyUserID), zap.Error(err))
		return nil, nil, err
	}

	ids, err := s.repo.Connection.ListIDs(ctx, model.PartyCompany, companyUserID)
	if err != nil {
		s.logger.Error("列出企业连接失败", zap.String("owner_id", companyUserID), zap.Error(err))
		return nil, nil, err
	}

	conns := make([]*model.Connection, 0, len(ids))
	for _, id := range ids {
		conn, err := s.repo.Connection.Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			s.logger.Error("查询连接失败", zap.String("connection_id", id), zap.Error(err))
			return nil, nil, err
		}
		if careerFairID != "" && conn.CareerFairID != careerFairID {
			continue
		}
		conns = append(conns, conn)
	}
	if len(conns) == 0 {
		return nil, nil, ErrExportNoConnections
	}
	sort.SliceStable(conns, func(i, j int) bool {
		return conns[i].ConnectionTimestamp.Before(conns[j].ConnectionTimestamp)
	})
	return company, conns, nil
}

// studentInfo 学生账号与档案信息，缺失时留空
type studentInfo struct {
	Name, Email, University, Degree, Year string
}

func (s *exportService) lookupStudent(ctx context.Context, studentUserID string) studentInfo {
	var info studentInfo
	if u, err := s.repo.User.GetByID(ctx, studentUserID); err == nil {
		info.Name, info.Email = u.Name, u.Email
	}
	if p, err := s.repo.StudentProfile.GetByUserID(ctx, studentUserID); err == nil {
		info.University, info.Degree, info.Year = p.University, p.Degree, p.YearOfStudy
	}
	return info
}

// partyNotes 双方备注，缺失的一方为空串
func (s *exportService) partyNotes(ctx context.Context, connID string) (map[model.Party]string, error) {
	notes := make(map[model.Party]string, 2)
	for _, party := range []model.Party{model.PartyCompany, model.PartyStudent} {
		n, err := s.repo.Connection.GetNotes(ctx, connID, party)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			s.logger.Error("查询连接备注失败", zap.String("connection_id", connID), zap.Error(err))
			return nil, err
		}
		notes[party] = n.Notes
	}
	return notes, nil
}

// rowValues 与 exportHeaders 一一对应
func (s *exportService) rowValues(ctx context.Context, conn *model.Connection) ([]string, error) {
	info := s.lookupStudent(ctx, conn.StudentUserID)
	notes, err := s.partyNotes(ctx, conn.ID)
	if err != nil {
		return nil, err
	}

	return []string{
		info.Name,
		info.Email,
		info.University,
		info.Degree,
		info.Year,
		exportStatusNames[conn.Status],
		exportTypeNames[conn.ConnectionType],
		notes[model.PartyCompany],
		notes[model.PartyStudent],
		conn.CareerFairID,
		conn.ConnectionTimestamp.Format("2006-01-02 15:04"),
		conn.UpdatedAt.Format("2006-01-02 15:04"),
	}, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
