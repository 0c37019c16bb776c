package parser

// RosterPrompt is the fixed instruction sent with every roster image.
const RosterPrompt = `帮我识别图片上的中国人员信息，姓名，身份证号(18位)，电话(13位)，工资，银行卡号(19位)，开户行地址。

返回json格式：
interface Info {
name:string
identity?: string
phone?:string,
salary: number
bankcard?: string
address?: string
}

return Info[]
仅返回 json 数据，不要有任何其他解释性文字。`
