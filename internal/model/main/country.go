package mainmodel

// Country 国家参考表，每个国家固定对应一个币种。
// 币种缺失是错误状态，查询方不得回退到默认币种
type Country struct {
	Code     string `gorm:"column:code;type:char(2);primaryKey;comment:国家代码（ISO 3166-1）"`
	NameEn   string `gorm:"column:name_en;type:varchar(100);not null;comment:英文名称"`
	NameZh   string `gorm:"column:name_zh;type:varchar(100);comment:中文名称"`
	Currency string `gorm:"column:currency;type:char(3);not null;comment:币种代码（ISO 4217）"`
	Status   int8   `gorm:"column:status;type:tinyint(1);default:1;not null;comment:是否开启:0禁用，1启用"`
}

func (Country) TableName() string { return "w_country" }
