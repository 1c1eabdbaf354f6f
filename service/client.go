package service

type CmdType int

const (
	Memscan CmdType = iota
	SlotClear
	SlotInfo
	SlotList
	Regions
	Read
)

var cmdNames = map[CmdType]string{
	Memscan:   "memscan",
	SlotClear: "slotclear",
	SlotInfo:  "slotinfo",
	SlotList:  "slotls",
	Regions:   "regions",
	Read:      "read",
}

func (c CmdType) String() string {
	if name, ok := cmdNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCmdType maps a command name back to its CmdType.
func ParseCmdType(name string) (CmdType, bool) {
	for t, n := range cmdNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

type Client interface {
	SendExpr(exprType CmdType, args string) (string, error)
	IsScanServer() bool
}
