package calc

// Canonical table: SAT keys are coarse, ACT keys cover 9..36 only.
var serverSATToACT = map[int]int{
	1600: 36, 1560: 35, 1520: 34, 1490: 33, 1450: 32, 1420: 31,
	1390: 30, 1360: 29, 1330: 28, 1300: 27, 1260: 26, 1230: 25,
	1200: 24, 1160: 23, 1130: 22, 1100: 21, 1060: 20, 1030: 19,
	990: 18, 960: 17, 920: 16, 880: 15, 830: 14, 780: 13,
	730: 12, 690: 11, 650: 10, 620: 9,
}

var serverACTToSAT = map[int]int{
	36: 1600, 35: 1560, 34: 1520, 33: 1490, 32: 1450, 31: 1420,
	30: 1390, 29: 1360, 28: 1330, 27: 1300, 26: 1260, 25: 1230,
	24: 1200, 23: 1160, 22: 1130, 21: 1100, 20: 1060, 19: 1030,
	18: 990, 17: 960, 16: 920, 15: 880, 14: 830, 13: 780,
	12: 730, 11: 690, 10: 650, 9: 620,
}

// Plugin table: every SAT score in steps of 10, ACT 1..36.
var wordpressSATToACT = map[int]int{
	1600: 36, 1590: 36, 1580: 36, 1570: 36, 1560: 35, 1550: 35, 1540: 35,
	1530: 34, 1520: 34, 1510: 34, 1500: 33, 1490: 33, 1480: 33, 1470: 32,
	1460: 32, 1450: 32, 1440: 31, 1430: 31, 1420: 31, 1410: 30, 1400: 30,
	1390: 30, 1380: 29, 1370: 29, 1360: 29, 1350: 28, 1340: 28, 1330: 28,
	1320: 27, 1310: 27, 1300: 27, 1290: 26, 1280: 26, 1270: 26, 1260: 25,
	1250: 25, 1240: 25, 1230: 24, 1220: 24, 1210: 24, 1200: 23, 1190: 23,
	1180: 23, 1170: 22, 1160: 22, 1150: 22, 1140: 21, 1130: 21, 1120: 21,
	1110: 20, 1100: 20, 1090: 20, 1080: 19, 1070: 19, 1060: 19, 1050: 18,
	1040: 18, 1030: 18, 1020: 17, 1010: 17, 1000: 17, 990: 16, 980: 16,
	970: 16, 960: 15, 950: 15, 940: 15, 930: 14, 920: 14, 910: 14,
	900: 13, 890: 13, 880: 13, 870: 12, 860: 12, 850: 12, 840: 11,
	830: 11, 820: 11, 810: 10, 800: 10, 790: 10, 780: 9, 770: 9,
	760: 9, 750: 8, 740: 8, 730: 8, 720: 7, 710: 7, 700: 7,
	690: 6, 680: 6, 670: 6, 660: 5, 650: 5, 640: 5, 630: 4,
	620: 4, 610: 4, 600: 3, 590: 3, 580: 3, 570: 2, 560: 2,
	550: 2, 540: 1, 530: 1, 520: 1, 510: 1, 500: 1, 490: 1,
	480: 1, 470: 1, 460: 1, 450: 1, 440: 1, 430: 1, 420: 1,
	410: 1, 400: 1,
}

var wordpressACTToSAT = map[int]int{
	36: 1590, 35: 1550, 34: 1510, 33: 1480, 32: 1450, 31: 1420, 30: 1390,
	29: 1360, 28: 1330, 27: 1300, 26: 1260, 25: 1230, 24: 1200, 23: 1170,
	22: 1140, 21: 1110, 20: 1080, 19: 1050, 18: 1020, 17: 990, 16: 960,
	15: 930, 14: 900, 13: 870, 12: 840, 11: 810, 10: 780, 9: 750,
	8: 720, 7: 690, 6: 660, 5: 630, 4: 600, 3: 570, 2: 540, 1: 500,
}
