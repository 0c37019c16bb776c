package domain

// Sheet is the format-agnostic description of one generated payroll sheet.
type Sheet struct {
	Title      string     `json:"title"`
	Issuer     string     `json:"issuer"`
	SalaryDate string     `json:"salary_date"`
	SheetDate  int64      `json:"sheet_date"`
	Rows       []SheetRow `json:"rows"`
	Total      int        `json:"total"`
	Signatures []string   `json:"signatures"`
}

// SheetRow is one worker line of a payroll sheet.
type SheetRow struct {
	Index            int     `json:"index"`
	Name             string  `json:"name"`
	Job              JobTier `json:"job"`
	Address          string  `json:"address"`
	Bankcard         string  `json:"bankcard"`
	Phone            string  `json:"phone"`
	Identity         string  `json:"identity"`
	DailyWage        int     `json:"daily_wage"`
	AttendanceDays   float64 `json:"attendance_days"`
	AttendanceSalary int     `json:"attendance_salary"`
	Signature        string  `json:"signature"`
}

const (
	SheetTitle      = "工资表"
	SheetTotalLabel = "合计"
)

// SheetHeaders are the column captions of the data region, in column order.
var SheetHeaders = []string{
	"序号",
	"姓名",
	"工种",
	"开户行名称",
	"银行卡号码",
	"电话号码",
	"身份证号码",
	"日工资",
	"出勤天数",
	"出勤工资",
	"签章",
}

// SheetSignatures are the labels of the signature line under the total row.
var SheetSignatures = []string{"制表人:", "单位负责人:", "单位签章："}
