package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"fasttrack/internal/model"
)

// ── iCalendar 导出 ──────────────────────────────────────────
//
// 每条连接对应一个 VEVENT：
//   - UID 为 <connection_id>@fasttrack，重复导入同一日历不会产生重复事件
//   - DTSTART 为连接时间，时长固定 calendarMeetingLength
//   - STATUS 随连接状态：pending→TENTATIVE，accepted→CONFIRMED，declined→CANCELLED
//   - DESCRIPTION 仅含企业侧备注，学生备注不对企业日历公开
// ─────────────────────────────────────────────────────────────

const calendarMeetingLength = 15 * time.Minute

const calendarProductID = "-//FastTrack//Career Fair Connections//ZH"

var calendarStatus = map[model.ConnectionStatus]ics.ObjectStatus{
	model.ConnectionPending:  ics.ObjectStatusTentative,
	model.ConnectionAccepted: ics.ObjectStatusConfirmed,
	model.ConnectionDeclined: ics.ObjectStatusCancelled,
}

func (s *exportService) ExportCalendar(ctx context.Context, companyUserID, careerFairID string) ([]byte, string, error) {
	company, conns, err := s.collectConnections(ctx, companyUserID, careerFairID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetName(company.Name + " 招聘会连接")

	for _, conn := range conns {
		info := s.lookupStudent(ctx, conn.StudentUserID)
		notes, err := s.partyNotes(ctx, conn.ID)
		if err != nil {
			return nil, "", err
		}

		evt := cal.AddEvent(conn.ID + "@fasttrack")
		evt.SetDtStampTime(conn.UpdatedAt.UTC())
		evt.SetCreatedTime(conn.ConnectionTimestamp.UTC())
		evt.SetModifiedAt(conn.UpdatedAt.UTC())
		evt.SetStartAt(conn.ConnectionTimestamp.UTC())
		evt.SetEndAt(conn.ConnectionTimestamp.Add(calendarMeetingLength).UTC())
		evt.SetSummary(calendarSummary(info, conn))
		evt.SetDescription(calendarDescription(info, conn, notes[model.PartyCompany]))
		if conn.CareerFairID != "" {
			evt.SetLocation(conn.CareerFairID)
		}
		if st, ok := calendarStatus[conn.Status]; ok {
			evt.SetStatus(st)
		}
	}

	filename := fmt.Sprintf("连接日程_%s.ics", company.Name)
	if careerFairID != "" {
		filename = fmt.Sprintf("连接日程_%s_%s.ics", company.Name, careerFairID)
	}
	s.logger.Info("导出连接日程", zap.String("company_id", company.ID), zap.Int("events", len(conns)))
	return []byte(cal.Serialize()), filename, nil
}

func calendarSummary(info studentInfo, conn *model.Connection) string {
	name := info.Name
	if name == "" {
		name = conn.StudentUserID
	}
	return fmt.Sprintf("%s（%s）", name, exportStatusNames[conn.Status])
}

func calendarDescription(info studentInfo, conn *model.Connection, companyNotes string) string {
	var b strings.Builder
	for _, line := range [][2]string{
		{"邮箱", info.Email},
		{"学校", info.University},
		{"专业", info.Degree},
		{"年级", info.Year},
		{"发起方", exportTypeNames[conn.ConnectionType]},
		{"企业备注", companyNotes},
	} {
		if line[1] == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line[0] + "：" + line[1])
	}
	return b.String()
}
