package posting

// Page-source fixtures trimmed from real uiautomator dumps. Attribute noise
// is stripped; bounds and the attributes the classifier reads are kept.

const igProfileXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.ImageView" content-desc="New post" resource-id="com.instagram.android:id/action_bar_new_post" clickable="true" bounds="[48,120][168,240]"/>
    <node class="android.widget.TextView" text="12 posts" bounds="[80,600][300,660]"/>
    <node class="android.widget.FrameLayout" resource-id="com.instagram.android:id/tab_bar" bounds="[0,2280][1080,2400]">
      <node class="android.widget.ImageView" content-desc="Home" clickable="true" bounds="[0,2280][216,2400]"/>
      <node class="android.widget.ImageView" content-desc="Search" clickable="true" bounds="[216,2280][432,2400]"/>
      <node class="android.widget.ImageView" content-desc="Profile" clickable="true" bounds="[864,2280][1080,2400]"/>
    </node>
  </node>
</hierarchy>`

const igFirstMenuXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.TextView" text="Post" clickable="true" bounds="[80,900][1000,1000]"/>
    <node class="android.widget.TextView" text="Story" clickable="true" bounds="[80,1020][1000,1120]"/>
    <node class="android.widget.TextView" text="Reel" clickable="true" bounds="[80,1140][1000,1240]"/>
    <node class="android.widget.TextView" text="Live" clickable="true" bounds="[80,1260][1000,1360]"/>
  </node>
</hierarchy>`

const igPostMenuXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.TextView" text="Gallery" clickable="true" bounds="[80,800][1000,920]"/>
    <node class="android.widget.TextView" text="Photo" clickable="true" bounds="[80,940][1000,1060]"/>
  </node>
</hierarchy>`

const igGalleryXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.TextView" text="Gallery" bounds="[60,120][400,200]"/>
    <node class="androidx.recyclerview.widget.RecyclerView" resource-id="com.instagram.android:id/media_picker_grid" bounds="[0,400][1080,2200]">
      <node class="android.widget.ImageView" clickable="true" bounds="[0,400][360,760]"/>
      <node class="android.widget.ImageView" clickable="true" bounds="[360,400][720,760]"/>
      <node class="android.widget.ImageView" clickable="true" bounds="[720,400][1080,760]"/>
      <node class="android.widget.ImageView" clickable="true" bounds="[0,760][360,1120]"/>
    </node>
  </node>
</hierarchy>`

const igGalleryEmptyXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.TextView" text="Gallery" bounds="[60,120][400,200]"/>
    <node class="android.widget.TextView" text="No media found" bounds="[200,1000][880,1100]"/>
  </node>
</hierarchy>`

const igTrimEditXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.ImageView" bounds="[0,300][1080,1380]"/>
    <node class="android.widget.TextView" text="Filter" clickable="true" bounds="[200,2150][440,2250]"/>
    <node class="android.widget.Button" text="Next" clickable="true" bounds="[880,2150][1060,2250]"/>
  </node>
</hierarchy>`

const igCaptionXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.EditText" resource-id="com.instagram.android:id/caption_text_view" hint="Write a caption..." clickable="true" bounds="[160,300][1040,480]"/>
  </node>
</hierarchy>`

const igShareReadyXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.ImageView" bounds="[40,280][280,520]"/>
    <node class="android.widget.EditText" resource-id="com.instagram.android:id/caption_text_view" hint="Write a caption..." clickable="true" bounds="[300,300][1040,480]"/>
    <node class="android.widget.TextView" text="Tag people" clickable="true" bounds="[40,560][1040,660]"/>
    <node class="android.widget.Button" text="Share" clickable="true" bounds="[840,140][1040,230]"/>
  </node>
</hierarchy>`

const igSuccessXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.TextView" text="Your post has been shared" bounds="[120,200][960,280]"/>
    <node class="android.widget.Button" text="Next" clickable="true" bounds="[880,2150][1060,2250]"/>
  </node>
</hierarchy>`

// Bottom navigation with a "Post" tab and no caption input anywhere.
const igBottomNavPostXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.FrameLayout" resource-id="com.instagram.android:id/tab_bar" bounds="[0,2280][1080,2400]">
      <node class="android.widget.ImageView" content-desc="Home" clickable="true" bounds="[0,2280][216,2400]"/>
      <node class="android.widget.ImageView" content-desc="Post" clickable="true" bounds="[432,2280][648,2400]"/>
      <node class="android.widget.ImageView" content-desc="Profile" clickable="true" bounds="[864,2280][1080,2400]"/>
    </node>
  </node>
</hierarchy>`

const unknownXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.TextView" text="Something went wrong" bounds="[200,1000][880,1100]"/>
    <node class="android.widget.Button" text="Try Again" clickable="true" bounds="[380,1200][700,1300]"/>
  </node>
</hierarchy>`

const ttRecordXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.ImageView" content-desc="Flip" clickable="true" bounds="[960,200][1060,300]"/>
    <node class="android.widget.TextView" text="60s" bounds="[300,2050][400,2110]"/>
    <node class="android.widget.TextView" text="Templates" bounds="[640,2050][840,2110]"/>
    <node class="android.widget.ImageView" content-desc="Record" clickable="true" bounds="[440,2140][640,2340]"/>
  </node>
</hierarchy>`

const ttCreateMenuXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.ImageView" content-desc="Record" clickable="true" bounds="[440,2140][640,2340]"/>
    <node class="android.widget.TextView" text="Upload" clickable="true" bounds="[800,2160][1020,2320]"/>
  </node>
</hierarchy>`

const ttDoneOnlyXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.Button" text="Done" clickable="true" bounds="[880,2150][1060,2250]"/>
  </node>
</hierarchy>`

const ttSuccessXML = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node class="android.widget.TextView" text="Your video has been posted" bounds="[120,200][960,280]"/>
  </node>
</hierarchy>`
