package character

// WeightedItem 带权重的取值
type WeightedItem struct {
	Name   string
	Weight int
}

// 触发能力的特征取值，能力系统按这些名字匹配
const (
	AttrReverseTechniqueOther = "反转术式输出"
	AttrReverseTechniqueSelf  = "反转术式（仅自身）"
	AttrInvertedSpear         = "天逆鉾"
	AttrThousandMileChain     = "万里之锁"
	AttrSixEyes               = "六眼"
	AttrRebornSorcerer        = "转生术师"
	AttrBlackFlash            = "黑闪"
	AttrDomainExtension       = "领域展延"
	AttrDragonBone            = "龙骨"
)

// 等级池，权重偏向中间段位
var rankPool = []WeightedItem{
	{Name: "四级", Weight: 10},
	{Name: "三级", Weight: 16},
	{Name: "准二级", Weight: 16},
	{Name: "二级", Weight: 18},
	{Name: "准一级", Weight: 14},
	{Name: "一级", Weight: 12},
	{Name: "特别一级", Weight: 7},
	{Name: "特级", Weight: 5},
	{Name: "宿傩与悟级别", Weight: 2},
}

// 咒力水平池
var cursedEnergyLevelPool = []WeightedItem{
	{Name: "极低", Weight: 8},
	{Name: "低", Weight: 14},
	{Name: "中等", Weight: 24},
	{Name: "中上", Weight: 18},
	{Name: "高", Weight: 16},
	{Name: "庞大", Weight: 12},
	{Name: "乙骨级别", Weight: 5},
	{Name: "宿傩级别", Weight: 3},
}

// 术式池
var cursedTechniquePool = []WeightedItem{
	{Name: "无下限咒术", Weight: 3},
	{Name: "十种影法术", Weight: 5},
	{Name: "蕴灵咒法", Weight: 8},
	{Name: "赝造咒具", Weight: 8},
	{Name: "傀儡操术", Weight: 8},
	{Name: "付丧操术", Weight: 8},
	{Name: "构思付丧", Weight: 7},
	{Name: "黑鸟操术", Weight: 8},
	{Name: "疱疮神", Weight: 6},
	{Name: "无为转变", Weight: 4},
	{Name: "投射咒法", Weight: 7},
	{Name: "沸腾血液", Weight: 7},
	{Name: "花御之森", Weight: 6},
	{Name: "虚式·茈", Weight: 2},
	{Name: "言灵咒术", Weight: 6},
	{Name: "比良坂", Weight: 7},
}

// 通用技能池，含触发能力的条目
var generalTechniquePool = []WeightedItem{
	{Name: AttrReverseTechniqueOther, Weight: 4},
	{Name: AttrReverseTechniqueSelf, Weight: 6},
	{Name: AttrBlackFlash, Weight: 5},
	{Name: AttrDomainExtension, Weight: 5},
	{Name: "简易领域", Weight: 10},
	{Name: "咒力强化体术", Weight: 16},
	{Name: "咒灵操术基础", Weight: 10},
	{Name: "结界术", Weight: 12},
	{Name: "帐", Weight: 10},
	{Name: "咒力输出控制", Weight: 14},
	{Name: "飞行咒法", Weight: 8},
}

// 咒具池，含触发能力的条目
var cursedToolPool = []WeightedItem{
	{Name: AttrInvertedSpear, Weight: 4},
	{Name: AttrThousandMileChain, Weight: 5},
	{Name: AttrDragonBone, Weight: 5},
	{Name: "游云", Weight: 8},
	{Name: "屠坐魔", Weight: 10},
	{Name: "释魂刀", Weight: 10},
	{Name: "三节棍", Weight: 12},
	{Name: "特级咒具·万里杖", Weight: 6},
	{Name: "普通咒具刀", Weight: 18},
}

// 优势池
var strengthPool = []WeightedItem{
	{Name: "近身格斗精通", Weight: 14},
	{Name: "咒力感知敏锐", Weight: 12},
	{Name: "战术头脑", Weight: 12},
	{Name: "身体素质出众", Weight: 14},
	{Name: "意志顽强", Weight: 12},
	{Name: "隐匿行动", Weight: 10},
	{Name: "团队协作", Weight: 10},
	{Name: "丰富的实战经验", Weight: 10},
	{Name: "冷静判断", Weight: 10},
}

// 弱点池
var weaknessPool = []WeightedItem{
	{Name: "咒力储量不足", Weight: 12},
	{Name: "近战乏力", Weight: 12},
	{Name: "容易冲动", Weight: 12},
	{Name: "旧伤未愈", Weight: 12},
	{Name: "恐高", Weight: 8},
	{Name: "轻信他人", Weight: 10},
	{Name: "体力不济", Weight: 12},
	{Name: "对咒灵过敏", Weight: 8},
	{Name: "优柔寡断", Weight: 10},
}

// 特殊特质池，出现概率低，含触发能力的条目
var specialTraitPool = []WeightedItem{
	{Name: AttrSixEyes, Weight: 3},
	{Name: AttrRebornSorcerer, Weight: 4},
	{Name: "天与咒缚", Weight: 8},
	{Name: "咒胎怀身", Weight: 5},
	{Name: "双生咒力", Weight: 6},
	{Name: "天生领域体质", Weight: 5},
}

// 当前状态池
var statePool = []WeightedItem{
	{Name: StateHealthy, Weight: 20},
	{Name: "受伤", Weight: 10},
	{Name: "重伤", Weight: 6},
	{Name: "濒死", Weight: 3},
	{Name: "情绪不稳", Weight: 8},
	{Name: "精疲力竭", Weight: 8},
	{Name: "被诅咒", Weight: 5},
	{Name: "意志坚定", Weight: 8},
	{Name: "专注", Weight: 8},
	{Name: "疲惫", Weight: 8},
	{Name: "警惕", Weight: 8},
	{Name: "多疑", Weight: 6},
	{Name: "轻信", Weight: 5},
	{Name: "鲁莽", Weight: 5},
	{Name: "亢奋", Weight: 5},
}
