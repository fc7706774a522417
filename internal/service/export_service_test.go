package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"

	"fasttrack/internal/dto"
	"fasttrack/internal/model"
)

func TestExportService_ExportConnections(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()
	seedUser(t, repo, "stu-1", "Thandi", model.RoleStudent)
	seedUser(t, repo, "stu-2", "Sipho", model.RoleStudent)
	seedStudentProfile(t, repo, "stu-1", "tok-1")
	seedStudentProfile(t, repo, "stu-2", "tok-2")
	seedCompany(t, repo, "company-1", "owner", "TechCorp")

	conns := NewConnectionService(repo, NewLocalLocker(), nopLogger())
	c1, err := conns.Scan(ctx, "owner", &dto.ScanConnectionRequest{QRToken: "tok-1", CareerFairID: "fair-a", Notes: "Great candidate"})
	if err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	if _, err := conns.Accept(ctx, c1.ID, "stu-1", &dto.RespondConnectionRequest{Notes: strPtr("Thanks!")}); err != nil {
		t.Fatalf("Accept 应成功: %v", err)
	}
	if _, err := conns.Scan(ctx, "owner", &dto.ScanConnectionRequest{QRToken: "tok-2", CareerFairID: "fair-b"}); err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}

	svc := NewExportService(repo, nopLogger())
	buf, filename, err := svc.ExportConnections(ctx, "owner", "fair-a")
	if err != nil {
		t.Fatalf("ExportConnections 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") || !strings.Contains(filename, "fair-a") {
		t.Errorf("文件名不正确: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("连接线索")
	if err != nil {
		t.Fatalf("读取 Sheet 失败: %v", err)
	}
	// 标题 + 表头 + 1 条数据
	if len(rows) != 3 {
		t.Fatalf("期望 3 行，实际=%d", len(rows))
	}
	data := rows[2]
	if data[0] != "Thandi" || data[5] != "已接受" || data[6] != "企业扫码" {
		t.Errorf("数据行不正确: %v", data)
	}
	if data[7] != "Great candidate" || data[8] != "Thanks!" {
		t.Errorf("双方备注不正确: company=%q student=%q", data[7], data[8])
	}

	// 不指定招聘会时导出全部
	buf, _, err = svc.ExportConnections(ctx, "owner", "")
	if err != nil {
		t.Fatalf("ExportConnections 应成功: %v", err)
	}
	all, _ := excelize.OpenReader(buf)
	defer all.Close()
	allRows, _ := all.GetRows("连接线索")
	if len(allRows) != 4 {
		t.Errorf("期望 4 行，实际=%d", len(allRows))
	}
}

func TestExportService_NoConnections(t *testing.T) {
	repo, _ := newTestRepo()
	seedCompany(t, repo, "company-1", "owner", "TechCorp")
	svc := NewExportService(repo, nopLogger())

	if _, _, err := svc.ExportConnections(context.Background(), "owner", ""); !errors.Is(err, ErrExportNoConnections) {
		t.Errorf("期望 ErrExportNoConnections，实际: %v", err)
	}
	if _, _, err := svc.ExportConnections(context.Background(), "nobody", ""); !errors.Is(err, ErrCompanyProfileRequired) {
		t.Errorf("期望 ErrCompanyProfileRequired，实际: %v", err)
	}
}

func TestExportService_ExportCalendar(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()
	seedUser(t, repo, "stu-1", "Thandi", model.RoleStudent)
	seedStudentProfile(t, repo, "stu-1", "tok-1")
	seedStudentProfile(t, repo, "stu-2", "tok-2")
	seedCompany(t, repo, "company-1", "owner", "TechCorp")

	conns := NewConnectionService(repo, NewLocalLocker(), nopLogger())
	c1, err := conns.Scan(ctx, "owner", &dto.ScanConnectionRequest{QRToken: "tok-1", CareerFairID: "fair-a", Notes: "Great candidate"})
	if err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	if _, err := conns.Accept(ctx, c1.ID, "stu-1", &dto.RespondConnectionRequest{Notes: strPtr("学生私有备注")}); err != nil {
		t.Fatalf("Accept 应成功: %v", err)
	}
	c2, err := conns.Scan(ctx, "owner", &dto.ScanConnectionRequest{QRToken: "tok-2", CareerFairID: "fair-a"})
	if err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}

	svc := NewExportService(repo, nopLogger())
	data, filename, err := svc.ExportCalendar(ctx, "owner", "fair-a")
	if err != nil {
		t.Fatalf("ExportCalendar 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("文件名不正确: %s", filename)
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("导出内容应为合法 iCalendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("期望 2 个事件，实际=%d", len(events))
	}

	byID := make(map[string]*ics.VEvent, len(events))
	for _, e := range events {
		byID[e.Id()] = e
	}
	accepted, ok := byID[c1.ID+"@fasttrack"]
	if !ok {
		t.Fatalf("缺少连接 %s 的事件", c1.ID)
	}
	if v := accepted.GetProperty(ics.ComponentPropertyStatus).Value; v != string(ics.ObjectStatusConfirmed) {
		t.Errorf("已接受连接期望 CONFIRMED，实际=%s", v)
	}
	if v := accepted.GetProperty(ics.ComponentPropertySummary).Value; !strings.Contains(v, "Thandi") {
		t.Errorf("摘要应包含学生姓名，实际=%s", v)
	}
	desc := accepted.GetProperty(ics.ComponentPropertyDescription).Value
	if !strings.Contains(desc, "Great candidate") || strings.Contains(desc, "学生私有备注") {
		t.Errorf("描述应只含企业备注，实际=%q", desc)
	}

	pending := byID[c2.ID+"@fasttrack"]
	if pending == nil {
		t.Fatalf("缺少连接 %s 的事件", c2.ID)
	}
	if v := pending.GetProperty(ics.ComponentPropertyStatus).Value; v != string(ics.ObjectStatusTentative) {
		t.Errorf("待确认连接期望 TENTATIVE，实际=%s", v)
	}
	// 无账号时摘要回退为用户 ID
	if v := pending.GetProperty(ics.ComponentPropertySummary).Value; !strings.Contains(v, "stu-2") {
		t.Errorf("摘要应回退为用户 ID，实际=%s", v)
	}

	if _, _, err := svc.ExportCalendar(ctx, "owner", "fair-z"); !errors.Is(err, ErrExportNoConnections) {
		t.Errorf("期望 ErrExportNoConnections，实际: %v", err)
	}
}
