package promptgen

import "math/rand/v2"

var sampleIdeas = []string{
	"一只穿着宇航服的柯基犬，在月球上追逐发光的骨头",
	"一座漂浮在云端的糖果城堡，由棉花糖和巧克力组成",
	"深海中的发光水母森林，巨大的鲸鱼在其中穿梭",
	"一位少女在雨中的古老小巷撑伞回眸，眼神清澈",
	"未来的火星殖民地，飞行汽车穿梭在摩天大楼之间",
	"水晶球里的微观世界，包含着四季的景色变化",
	"巨大的机械龙盘旋在废弃的城市上空，夕阳西下",
	"森林深处的树屋图书馆，萤火虫环绕着书架",
	"赛博朋克风格的拉面店，机器人厨师正在煮面",
	"一杯冒着热气的咖啡，拉花是银河系的图案",
	"一只戴着眼镜的猫头鹰在复古书房里写信",
	"巨大的浮空岛屿，瀑布从边缘倾泻而下",
}

// SampleIdeas returns a copy of the built-in inspiration list.
func SampleIdeas() []string {
	out := make([]string, len(sampleIdeas))
	copy(out, sampleIdeas)
	return out
}

// RandomIdea picks one sample idea uniformly.
func RandomIdea() string {
	return sampleIdeas[rand.IntN(len(sampleIdeas))]
}
