package reminder

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var weekdayNames = [7]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

// HelpText is the user-facing help, listing every accepted phrase shape.
const HelpText = `📝 提醒功能使用帮助：

1️⃣ 设置提醒
• 格式：提醒 [内容] [时间]
• 示例：
  - 提醒 开会 明天下午3点
  - 提醒 吃药 30分钟后
  - 提醒 买菜 每周六上午10点

2️⃣ 查看提醒
• 命令：查看提醒
• 功能：显示所有已设置的提醒

3️⃣ 管理提醒
• 删除提醒 [ID]：删除指定提醒
• 暂停提醒 [ID]：暂停指定提醒
• 恢复提醒 [ID]：恢复指定提醒

4️⃣ 时间格式支持
• 相对时间：30分钟后、2小时后、3天后
• 具体日期：明天下午3点、后天晚上8点
• 星期时间：周六21点、下周一上午10点
• 标准格式：2025-06-08 15:30

💡 提示：时间支持自然语言，可以灵活表达`

// unresolvableReply suggests accepted shapes when no strategy matched.
func unresolvableReply(phrase string) string {
	suggestions := []string{
		"• 相对时间：30分钟后、2小时后、3天后",
		"• 具体日期：明天下午3点、后天晚上8点",
		"• 星期时间：周六21点、下周一上午10点",
		"• 标准格式：2025-06-08 15:30",
	}
	return fmt.Sprintf("⚠️ 无法理解时间 '%s'\n\n支持的格式示例：\n%s",
		phrase, strings.Join(suggestions, "\n"))
}

// FormatCreated builds the confirmation text for a freshly created
// reminder, with the resolved date, weekday and recurrence.
func FormatCreated(rec Record) string {
	when := rec.DueAt.Format("2006年01月02日 15:04")
	weekday := weekdayNames[int(rec.DueAt.Weekday())]
	repeat := ""
	if rec.Recurrence != RepeatNone {
		repeat = fmt.Sprintf("\n🔄 重复：%s", rec.Recurrence)
	}
	return fmt.Sprintf("✅ 提醒设置成功！\n📅 时间：%s (%s)\n📝 内容：%s\n🆔 ID：%s%s",
		when, weekday, rec.Content, rec.ID, repeat)
}

// FormatList renders an owner's reminders for display.
func FormatList(records []Record) string {
	if len(records) == 0 {
		return "📝 您当前没有任何提醒"
	}
	var b strings.Builder
	b.WriteString("📋 您的提醒列表：\n\n")
	for _, rec := range records {
		status := "✅"
		if !rec.Active {
			status = "⏸️"
		}
		fmt.Fprintf(&b, "%s %s - %s (ID: %s)", status, rec.DueAt.Format("2006-01-02 15:04"), rec.Content, rec.ID)
		if rec.Recurrence != RepeatNone {
			fmt.Fprintf(&b, " [%s]", rec.Recurrence)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// CommandHandler turns the plain-text management commands into service
// calls and reply texts. The chat layer hands every message here first;
// unrecognized messages are reported as not handled.
type CommandHandler struct {
	svc *Service
}

// NewCommandHandler wraps a service with the text command surface.
func NewCommandHandler(svc *Service) *CommandHandler {
	return &CommandHandler{svc: svc}
}

// Handle dispatches msg on behalf of sender. It returns the reply and
// whether the message was one of the recognized commands.
func (h *CommandHandler) Handle(msg, sender string) (string, bool) {
	msg = strings.TrimSpace(msg)

	switch msg {
	case "查看提醒", "提醒列表", "我的提醒":
		return FormatList(h.svc.List(sender)), true
	case "提醒帮助", "定时提醒帮助":
		return HelpText, true
	}

	switch {
	case strings.HasPrefix(msg, "删除提醒"):
		return h.handleDelete(msg, sender), true
	case strings.HasPrefix(msg, "暂停提醒"):
		return h.handleToggle(msg, "暂停提醒", sender, false), true
	case strings.HasPrefix(msg, "恢复提醒"):
		return h.handleToggle(msg, "恢复提醒", sender, true), true
	}

	return "", false
}

// HandleCreate services the structured create call: content plus a
// natural-language phrase, with recurrence either explicit or detected
// from the phrase.
func (h *CommandHandler) HandleCreate(owner, target string, kind TargetKind, content, phrase string, rec Recurrence) string {
	record, err := h.svc.Create(owner, target, kind, content, phrase, rec)
	switch {
	case errors.Is(err, ErrTimeUnresolvable):
		return unresolvableReply(phrase)
	case errors.Is(err, ErrTimeInPast):
		return "⚠️ 设置的时间已经过去了，请重新设置！"
	case err != nil:
		return fmt.Sprintf("❌ 设置提醒失败：%v", err)
	}
	return FormatCreated(record)
}

func (h *CommandHandler) handleDelete(msg, sender string) string {
	id := strings.TrimSpace(strings.TrimPrefix(msg, "删除提醒"))
	if id == "" {
		return "❌ 请指定要删除的提醒ID"
	}

	rec, err := h.svc.Delete(id, sender)
	switch {
	case errors.Is(err, ErrNotFound):
		return "❌ 未找到指定的提醒"
	case errors.Is(err, ErrForbidden):
		return "❌ 您没有权限删除此提醒"
	case err != nil:
		return "❌ 删除提醒失败，请重试"
	}
	return fmt.Sprintf("✅ 已删除提醒：%s", rec.Content)
}

func (h *CommandHandler) handleToggle(msg, prefix, sender string, active bool) string {
	id := strings.TrimSpace(strings.TrimPrefix(msg, prefix))
	if id == "" {
		return "❌ 请指定要操作的提醒ID"
	}

	rec, err := h.svc.SetActive(id, sender, active)
	switch {
	case errors.Is(err, ErrNotFound):
		return "❌ 未找到指定的提醒"
	case errors.Is(err, ErrForbidden):
		return "❌ 您没有权限操作此提醒"
	case err != nil:
		return "❌ 操作失败，请重试"
	}
	if active {
		return fmt.Sprintf("✅ 已恢复提醒：%s", rec.Content)
	}
	return fmt.Sprintf("⏸️ 已暂停提醒：%s", rec.Content)
}

// DeliveryText is what the transport sends at fire time.
func DeliveryText(content string, dueAt time.Time) string {
	return fmt.Sprintf("⏰ 提醒：%s\n⏱️ 时间：%s", content, dueAt.Format("2006-01-02 15:04"))
}
