package slack

import (
	"fmt"
	"strings"
)

type CommandType string

const (
	CmdToday    CommandType = "today"
	CmdShow     CommandType = "show"
	CmdList     CommandType = "list"
	CmdToggle   CommandType = "toggle"
	CmdDisable  CommandType = "disable"
	CmdEnable   CommandType = "enable"
	CmdStats    CommandType = "stats"
	CmdReset    CommandType = "reset"
	CmdCountry  CommandType = "country"
	CmdTimezone CommandType = "timezone"
	CmdNotify   CommandType = "notify"
	CmdTime     CommandType = "time"
	CmdStatus   CommandType = "status"
	CmdTest     CommandType = "test"
	CmdHelp     CommandType = "help"
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

// Arg returns the i-th argument or an empty string
func (c *Command) Arg(i int) string {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return ""
}

func ParseCommand(text string) (*Command, error) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) == 0 {
		return &Command{Type: CmdToday}, nil
	}

	cmd := &Command{
		Raw:  text,
		Args: parts[1:],
	}

	switch strings.ToLower(parts[0]) {
	case "today":
		cmd.Type = CmdToday
	case "show":
		cmd.Type = CmdShow
	case "list", "ls":
		cmd.Type = CmdList
	case "toggle":
		cmd.Type = CmdToggle
	case "disable", "off":
		cmd.Type = CmdDisable
	case "enable", "on":
		cmd.Type = CmdEnable
	case "stats":
		cmd.Type = CmdStats
	case "reset":
		cmd.Type = CmdReset
	case "country":
		cmd.Type = CmdCountry
	case "timezone", "tz":
		cmd.Type = CmdTimezone
	case "notify", "notifications":
		cmd.Type = CmdNotify
	case "time":
		cmd.Type = CmdTime
	case "status":
		cmd.Type = CmdStatus
	case "test":
		cmd.Type = CmdTest
	case "help":
		cmd.Type = CmdHelp
	default:
		return nil, fmt.Errorf("unknown command: %s", parts[0])
	}

	return cmd, nil
}

func GetHelpText() string {
	return `*Available Commands:*

*Daily advice:*
• ` + "`/advice`" + ` or ` + "`/advice today`" + ` - Show today's advice
• ` + "`/advice show ID`" + ` - Show one item
• ` + "`/advice list [SECTION]`" + ` - List sections, or the items of one section
• ` + "`/advice stats`" + ` - Show rotation progress
• ` + "`/advice reset`" + ` - Start a new rotation cycle

*Manage Items:*
• ` + "`/advice toggle ID`" + ` - Enable or disable an item
• ` + "`/advice disable ID`" + ` - Never pick this item
• ` + "`/advice enable ID`" + ` - Put this item back in the rotation

*Settings:*
• ` + "`/advice country [CODE]`" + ` - Show or change the content country (ex: nz, uk)
• ` + "`/advice timezone ZONE`" + ` - Set your timezone (ex: Pacific/Auckland)
• ` + "`/advice notify on|off`" + ` - Turn daily notifications on or off
• ` + "`/advice time fixed HH:MM`" + ` - Notify every day at the same time
• ` + "`/advice time random HH:MM HH:MM`" + ` - Notify at a random time inside a window
• ` + "`/advice status`" + ` - Show settings and pending notifications
• ` + "`/advice test`" + ` - Send a test notification now`
}
